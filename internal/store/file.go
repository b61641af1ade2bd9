package store

import (
	"context"
	"database/sql"

	"github.com/vottdot/vottdot-server/internal/domain"
)

// FileStore defines the interface for file-metadata persistence.
// Files are addressed by the (fileName, fileUUID) pair, which is unique.
type FileStore interface {
	// FindAll retrieves every file-metadata row in the store.
	FindAll(ctx context.Context) ([]*domain.File, error)

	// FindByKey retrieves a file by its (fileName, fileUUID) pair.
	// Returns ErrFileNotFound if no such row exists.
	FindByKey(ctx context.Context, fileName, fileUUID string) (*domain.File, error)

	// Save inserts the file, or replaces the stored data when a row with
	// the same (fileName, fileUUID) pair already exists. The stored data
	// is kept verbatim; it is never parsed as JSON.
	Save(ctx context.Context, file *domain.File) error

	// DeleteByKey removes a file by its (fileName, fileUUID) pair.
	// Deleting a missing file is not an error: the operation is
	// idempotent by the client's convention.
	DeleteByKey(ctx context.Context, fileName, fileUUID string) error

	// WithTx returns a new FileStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FileStore
}
