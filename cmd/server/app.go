package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vottdot/vottdot-server/internal/config"
	"github.com/vottdot/vottdot-server/internal/platform/logger"
	"github.com/vottdot/vottdot-server/internal/platform/postgres"
	"github.com/vottdot/vottdot-server/internal/service"
)

// application holds the initialized dependencies of the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	taskService service.TaskService
	fileService service.FileService
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, migrations, stores and services.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"asset_dir", cfg.Assets.Dir)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	taskStore := postgres.NewPostgresTaskStore(db, appLogger)
	fileStore := postgres.NewPostgresFileStore(db, appLogger)

	taskService, err := service.NewTaskService(
		service.NewTaskRepositoryAdapter(taskStore, db),
		service.UTCClock{},
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	fileService, err := service.NewFileService(
		service.NewFileRepositoryAdapter(fileStore, db),
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		taskService: taskService,
		fileService: fileService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
