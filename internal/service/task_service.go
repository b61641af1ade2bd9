package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/store"
)

// TaskRepository defines the repository interface for the task service.
// This is aligned with store.TaskStore to keep separation of concerns;
// the DB/WithTx pair lets the service run the read-merge-write save
// sequence inside one transaction.
type TaskRepository interface {
	// FindAll retrieves every task.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByID retrieves a task by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Save persists the task's final representation.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a task with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// TaskService provides the task operations exposed over HTTP.
type TaskService interface {
	// FindAll returns every task. No pagination.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindOne returns the task with the given ID.
	// Returns ErrTaskNotFound when it does not exist.
	FindOne(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Save upserts the task with merge-on-save semantics and returns the
	// persisted representation. See the method documentation on
	// taskServiceImpl.Save for the exact sequence.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound when it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether the task with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskRepo TaskRepository
	clock    Clock
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the repository is nil. A nil clock defaults to
// the UTC wall clock; a nil logger defaults to slog.Default().
func NewTaskService(taskRepo TaskRepository, clock Clock, logger *slog.Logger) (TaskService, error) {
	if taskRepo == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}
	if clock == nil {
		clock = UTCClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		clock:    clock,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// FindAll returns every task.
func (s *taskServiceImpl) FindAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, NewServiceError("find_all_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// FindOne returns the task with the given ID, or ErrTaskNotFound.
func (s *taskServiceImpl) FindOne(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)
		return nil, NewServiceError("find_task", "failed to retrieve task", err)
	}
	return task, nil
}

// Save upserts a task with merge-on-save semantics, inside one database
// transaction:
//
//  1. Look up any existing row by the task's ID.
//  2. If one exists, merge it into the incoming task (incoming values win,
//     stored values fill gaps, createdAt is always inherited) and stamp
//     lastUpdatedAt from the clock.
//  3. Otherwise stamp createdAt = lastUpdatedAt = now and clear
//     lastUsedForProjectCreation.
//  4. Default attributeKeys to an empty map and populate progress from the
//     image list when the client submitted none.
//  5. Validate required fields; a failure aborts without persisting.
//  6. Persist and return the stored representation.
func (s *taskServiceImpl) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, domain.ErrTaskIDEmpty)
	}

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		repo := s.taskRepo.WithTx(tx)

		existing, err := repo.FindByID(ctx, task.ID)
		switch {
		case err == nil:
			task.MergeFrom(existing)
			task.LastUpdatedAt = FormatTimestamp(s.clock.Now())
		case store.IsNotFoundError(err):
			task.CreatedAt = FormatTimestamp(s.clock.Now())
			task.LastUpdatedAt = task.CreatedAt
			task.LastUsedForProjectCreation = ""
		default:
			s.logger.Error("failed to look up task during save",
				"error", err,
				"task_id", task.ID)
			return NewServiceError("save_task", "failed to look up existing task", err)
		}

		if task.AttributeKeys == nil {
			task.AttributeKeys = make(map[string]json.RawMessage)
		}
		task.PopulateDefaultProgress()

		if err := task.Validate(); err != nil {
			s.logger.Warn("task validation failed during save",
				"error", err,
				"task_id", task.ID)
			return fmt.Errorf("%w: %w", ErrInvalidTask, err)
		}

		if err := repo.Save(ctx, task); err != nil {
			s.logger.Error("failed to persist task",
				"error", err,
				"task_id", task.ID)
			return NewServiceError("save_task", "failed to persist task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task saved",
		"task_id", task.ID,
		"image_count", len(task.ImageList))
	return task, nil
}

// Delete removes the task with the given ID, or fails with ErrTaskNotFound.
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// Exists reports whether the task with the given ID is present.
func (s *taskServiceImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.taskRepo.Exists(ctx, id)
	if err != nil {
		s.logger.Error("failed to check task existence",
			"error", err,
			"task_id", id)
		return false, NewServiceError("task_exists", "failed to check task existence", err)
	}
	return exists, nil
}
