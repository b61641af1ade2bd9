package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vottdot/vottdot-server/internal/api"
	apiMiddleware "github.com/vottdot/vottdot-server/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	fileHandler := api.NewFileHandler(app.fileService, app.logger)
	imageHandler := api.NewImageHandler(app.config.Assets.Dir, app.config.Assets.CatalogPath, app.logger)

	// Image assets (read-only)
	r.Route("/images", func(r chi.Router) {
		r.Get("/{name}", imageHandler.GetCatalog)
		r.Get("/{name}/{fileName}", imageHandler.GetImage)
	})

	// File metadata, keyed by (fileName, uuid)
	r.Route("/file", func(r chi.Router) {
		r.Get("/", fileHandler.ListFiles)
		r.Get("/{fileName}", fileHandler.GetFile)
		r.Put("/{fileName}", fileHandler.PutFile)
		r.Delete("/{fileName}", fileHandler.DeleteFile)
	})

	// Annotation tasks
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Post("/", taskHandler.SaveTask)
		r.Put("/", taskHandler.SaveTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
