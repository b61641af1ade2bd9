package service

import (
	"database/sql"

	"github.com/vottdot/vottdot-server/internal/store"
)

// TaskRepositoryAdapter adapts a store.TaskStore to service.TaskRepository,
// carrying the *sql.DB so the service can open transactions without
// depending on a concrete store implementation.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that implements
// service.TaskRepository by delegating to a store.TaskStore implementation.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// Ensure TaskRepositoryAdapter implements service.TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)

// WithTx returns a new adapter whose store operations run on the transaction.
func (a *TaskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &TaskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying database connection.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// FileRepositoryAdapter adapts a store.FileStore to service.FileRepository.
type FileRepositoryAdapter struct {
	store.FileStore
	db *sql.DB
}

// NewFileRepositoryAdapter creates a new adapter that implements
// service.FileRepository by delegating to a store.FileStore implementation.
func NewFileRepositoryAdapter(fileStore store.FileStore, db *sql.DB) *FileRepositoryAdapter {
	return &FileRepositoryAdapter{
		FileStore: fileStore,
		db:        db,
	}
}

// Ensure FileRepositoryAdapter implements service.FileRepository
var _ FileRepository = (*FileRepositoryAdapter)(nil)

// WithTx returns a new adapter whose store operations run on the transaction.
func (a *FileRepositoryAdapter) WithTx(tx *sql.Tx) FileRepository {
	return &FileRepositoryAdapter{
		FileStore: a.FileStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying database connection.
func (a *FileRepositoryAdapter) DB() *sql.DB {
	return a.db
}
