package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/store"
)

// FileRepository defines the repository interface for the file service,
// aligned with store.FileStore.
type FileRepository interface {
	// FindAll retrieves every file-metadata row.
	FindAll(ctx context.Context) ([]*domain.File, error)

	// FindByKey retrieves a file by its (fileName, fileUUID) pair.
	FindByKey(ctx context.Context, fileName, fileUUID string) (*domain.File, error)

	// Save persists the file, replacing stored data on key collision.
	Save(ctx context.Context, file *domain.File) error

	// DeleteByKey removes a file by its (fileName, fileUUID) pair.
	DeleteByKey(ctx context.Context, fileName, fileUUID string) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FileRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// FileService provides the file-metadata operations exposed over HTTP.
// The service is the only component that touches File rows.
type FileService interface {
	// FindAll returns every stored file-metadata row.
	FindAll(ctx context.Context) ([]*domain.File, error)

	// Get returns the file for the (fileName, fileUUID) pair.
	// Returns ErrFileNotFound when no such row exists.
	Get(ctx context.Context, fileName, fileUUID string) (*domain.File, error)

	// Upsert stores data under the (fileName, fileUUID) pair, creating the
	// row on first write and replacing the data afterwards. The data is
	// kept verbatim and returned as stored.
	Upsert(ctx context.Context, fileName, fileUUID, data string) (*domain.File, error)

	// Delete removes the row for the pair. Deleting a missing row is a
	// silent success; this asymmetry with tasks is intentional and
	// preserved from the consuming client's expectations.
	Delete(ctx context.Context, fileName, fileUUID string) error
}

// fileServiceImpl implements the FileService interface.
type fileServiceImpl struct {
	fileRepo FileRepository
	logger   *slog.Logger
}

// NewFileService creates a new FileService.
// It returns an error if the repository is nil. A nil logger defaults to
// slog.Default().
func NewFileService(fileRepo FileRepository, logger *slog.Logger) (FileService, error) {
	if fileRepo == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "fileRepo cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &fileServiceImpl{
		fileRepo: fileRepo,
		logger:   logger.With("component", "file_service"),
	}, nil
}

// FindAll returns every stored file-metadata row.
func (s *fileServiceImpl) FindAll(ctx context.Context) ([]*domain.File, error) {
	files, err := s.fileRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list files", "error", err)
		return nil, NewServiceError("find_all_files", "failed to list files", err)
	}
	return files, nil
}

// Get returns the file for the pair, or ErrFileNotFound.
func (s *fileServiceImpl) Get(ctx context.Context, fileName, fileUUID string) (*domain.File, error) {
	file, err := s.fileRepo.FindByKey(ctx, fileName, fileUUID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrFileNotFound
		}
		s.logger.Error("failed to retrieve file",
			"error", err,
			"file_name", fileName,
			"file_uuid", fileUUID)
		return nil, NewServiceError("get_file", "failed to retrieve file", err)
	}
	return file, nil
}

// Upsert stores data under the pair inside one transaction: read the
// existing row, replace its data or create a fresh row, write.
func (s *fileServiceImpl) Upsert(ctx context.Context, fileName, fileUUID, data string) (*domain.File, error) {
	var result *domain.File

	err := store.RunInTransaction(ctx, s.fileRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		repo := s.fileRepo.WithTx(tx)

		file, err := repo.FindByKey(ctx, fileName, fileUUID)
		switch {
		case err == nil:
			file.Data = data
		case store.IsNotFoundError(err):
			file, err = domain.NewFile(fileName, fileUUID, data)
			if err != nil {
				return NewServiceError("upsert_file", "invalid file key", err)
			}
		default:
			s.logger.Error("failed to look up file during upsert",
				"error", err,
				"file_name", fileName,
				"file_uuid", fileUUID)
			return NewServiceError("upsert_file", "failed to look up existing file", err)
		}

		if err := repo.Save(ctx, file); err != nil {
			s.logger.Error("failed to persist file",
				"error", err,
				"file_name", fileName,
				"file_uuid", fileUUID)
			return NewServiceError("upsert_file", "failed to persist file", err)
		}

		result = file
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file saved",
		"file_name", fileName,
		"file_uuid", fileUUID,
		"bytes", len(data))
	return result, nil
}

// Delete removes the row for the pair; missing rows are a silent success.
func (s *fileServiceImpl) Delete(ctx context.Context, fileName, fileUUID string) error {
	if err := s.fileRepo.DeleteByKey(ctx, fileName, fileUUID); err != nil {
		s.logger.Error("failed to delete file",
			"error", err,
			"file_name", fileName,
			"file_uuid", fileUUID)
		return NewServiceError("delete_file", "failed to delete file", err)
	}

	s.logger.Info("file deleted",
		"file_name", fileName,
		"file_uuid", fileUUID)
	return nil
}
