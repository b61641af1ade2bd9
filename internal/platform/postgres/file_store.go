package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/platform/logger"
	"github.com/vottdot/vottdot-server/internal/store"
)

// PostgresFileStore implements the store.FileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFileStore creates a new PostgreSQL implementation of the FileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFileStore(db store.DBTX, logger *slog.Logger) *PostgresFileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "file_store")),
	}
}

// Ensure PostgresFileStore implements store.FileStore interface
var _ store.FileStore = (*PostgresFileStore)(nil)

// FindAll implements store.FileStore.FindAll
func (s *PostgresFileStore) FindAll(ctx context.Context) ([]*domain.File, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, file_name, file_uuid, data FROM files`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query files", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	files := make([]*domain.File, 0)
	for rows.Next() {
		var file domain.File
		if err := rows.Scan(&file.ID, &file.FileName, &file.FileUUID, &file.Data); err != nil {
			log.Error("failed to scan file row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		log.Error("file row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("files retrieved", slog.Int("count", len(files)))
	return files, nil
}

// FindByKey implements store.FileStore.FindByKey
// Returns store.ErrFileNotFound if no row matches the pair.
func (s *PostgresFileStore) FindByKey(ctx context.Context, fileName, fileUUID string) (*domain.File, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, file_name, file_uuid, data FROM files WHERE file_name = $1 AND file_uuid = $2`

	var file domain.File
	err := s.db.QueryRowContext(ctx, query, fileName, fileUUID).Scan(
		&file.ID,
		&file.FileName,
		&file.FileUUID,
		&file.Data,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("file not found",
				slog.String("file_name", fileName),
				slog.String("file_uuid", fileUUID))
			return nil, store.ErrFileNotFound
		}
		log.Error("failed to get file by key",
			slog.String("error", err.Error()),
			slog.String("file_name", fileName),
			slog.String("file_uuid", fileUUID))
		return nil, MapError(err)
	}

	return &file, nil
}

// Save implements store.FileStore.Save
// It inserts the file, replacing the stored data when a row with the same
// (file_name, file_uuid) pair already exists. The data column is written
// verbatim.
func (s *PostgresFileStore) Save(ctx context.Context, file *domain.File) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := file.Validate(); err != nil {
		log.Warn("file validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO files (id, file_name, file_uuid, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (file_name, file_uuid) DO UPDATE SET data = EXCLUDED.data
	`

	_, err := s.db.ExecContext(ctx, query, file.ID, file.FileName, file.FileUUID, file.Data)
	if err != nil {
		log.Error("failed to save file",
			slog.String("error", err.Error()),
			slog.String("file_name", file.FileName),
			slog.String("file_uuid", file.FileUUID))
		return MapError(err)
	}

	log.Info("file saved",
		slog.String("file_name", file.FileName),
		slog.String("file_uuid", file.FileUUID))
	return nil
}

// DeleteByKey implements store.FileStore.DeleteByKey
// Deleting a missing file is a silent success by the client's convention.
func (s *PostgresFileStore) DeleteByKey(ctx context.Context, fileName, fileUUID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM files WHERE file_name = $1 AND file_uuid = $2`

	result, err := s.db.ExecContext(ctx, query, fileName, fileUUID)
	if err != nil {
		log.Error("failed to delete file",
			slog.String("error", err.Error()),
			slog.String("file_name", fileName),
			slog.String("file_uuid", fileUUID))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("file already absent",
			slog.String("file_name", fileName),
			slog.String("file_uuid", fileUUID))
	}

	return nil
}

// WithTx implements store.FileStore.WithTx
// It returns a new FileStore that uses the provided transaction.
func (s *PostgresFileStore) WithTx(tx *sql.Tx) store.FileStore {
	return &PostgresFileStore{
		db:     tx,
		logger: s.logger,
	}
}
