package api

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vottdot/vottdot-server/internal/api/shared"
)

// ImageHandler serves the read-only image assets: a bundled catalog JSON
// and per-file JPEG bytes from the asset directory.
type ImageHandler struct {
	assetDir    string
	catalogPath string
	logger      *slog.Logger
}

// NewImageHandler creates a new ImageHandler serving files from assetDir
// and the catalog from catalogPath.
func NewImageHandler(assetDir, catalogPath string, logger *slog.Logger) *ImageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageHandler{
		assetDir:    assetDir,
		catalogPath: catalogPath,
		logger:      logger.With(slog.String("component", "image_handler")),
	}
}

// GetCatalog handles GET /images/{name} requests.
// The catalog payload is the same regardless of {name}; the parameter
// exists for routing symmetry with the per-file endpoint.
func (h *ImageHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.catalogPath)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to read image catalog", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write catalog response", "error", err)
	}
}

// GetImage handles GET /images/{name}/{fileName} requests.
// The file name is confined to the asset directory: anything containing a
// path separator or a ".." segment is refused with 400 before touching
// the filesystem.
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "fileName")

	if !isSafeAssetName(fileName) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid file name")
		return
	}

	f, err := os.Open(filepath.Join(h.assetDir, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Image not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to open image", err)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			h.logger.Warn("failed to close image file", "error", closeErr)
		}
	}()

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Error("failed to stream image",
			"error", err,
			"file_name", fileName)
	}
}

// isSafeAssetName reports whether the requested file name stays inside
// the asset directory when joined to it.
func isSafeAssetName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return filepath.IsLocal(name)
}
