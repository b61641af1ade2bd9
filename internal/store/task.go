package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vottdot/vottdot-server/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// FindAll retrieves every task in the store. No pagination: the task
	// table is small by construction (one row per annotation project).
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Save inserts the task, or replaces the stored row when one with the
	// same ID already exists. The merge/default semantics live in the
	// service layer; by the time Save is called the task is the final
	// representation to persist.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a task with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
