package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/platform/logger"
	"github.com/vottdot/vottdot-server/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
// The map-valued task fields are stored as JSONB columns.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, stella_url, vott_backend_url, image_server_url, task_server_url,
	created_at, last_updated_at, last_used_for_project_creation,
	image_list, progress, attribute_keys, tags, categories`

// FindAll implements store.TaskStore.FindAll
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("task row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("tasks retrieved", slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// Save implements store.TaskStore.Save
// It inserts the task, replacing the stored row when one with the same ID
// already exists. By the time Save is called the task carries its final
// field values; the merge semantics live in the service layer.
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	imageList, err := marshalJSONColumn(task.ImageList)
	if err != nil {
		return fmt.Errorf("%w: image list: %v", store.ErrInvalidEntity, err)
	}
	progress, err := marshalJSONColumn(task.Progress)
	if err != nil {
		return fmt.Errorf("%w: progress: %v", store.ErrInvalidEntity, err)
	}
	attributeKeys, err := marshalJSONColumn(task.AttributeKeys)
	if err != nil {
		return fmt.Errorf("%w: attribute keys: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			stella_url = EXCLUDED.stella_url,
			vott_backend_url = EXCLUDED.vott_backend_url,
			image_server_url = EXCLUDED.image_server_url,
			task_server_url = EXCLUDED.task_server_url,
			created_at = EXCLUDED.created_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_used_for_project_creation = EXCLUDED.last_used_for_project_creation,
			image_list = EXCLUDED.image_list,
			progress = EXCLUDED.progress,
			attribute_keys = EXCLUDED.attribute_keys,
			tags = EXCLUDED.tags,
			categories = EXCLUDED.categories
	`

	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.StellaURL,
		task.VottBackendURL,
		task.ImageServerURL,
		task.TaskServerURL,
		task.CreatedAt,
		task.LastUpdatedAt,
		task.LastUsedForProjectCreation,
		imageList,
		progress,
		attributeKeys,
		rawJSONColumn(task.Tags),
		rawJSONColumn(task.Categories),
	)
	if err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task saved",
		slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// Exists implements store.TaskStore.Exists
func (s *PostgresTaskStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanTask reads one task row through the given scan function, decoding
// the JSONB columns back into their map forms. NULL JSONB columns come
// back as nil maps.
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	var imageList, progress, attributeKeys, tags, categories []byte

	err := scan(
		&task.ID,
		&task.StellaURL,
		&task.VottBackendURL,
		&task.ImageServerURL,
		&task.TaskServerURL,
		&task.CreatedAt,
		&task.LastUpdatedAt,
		&task.LastUsedForProjectCreation,
		&imageList,
		&progress,
		&attributeKeys,
		&tags,
		&categories,
	)
	if err != nil {
		return nil, err
	}

	if len(imageList) > 0 {
		if err := json.Unmarshal(imageList, &task.ImageList); err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to decode image list", err)
		}
	}
	if len(progress) > 0 {
		if err := json.Unmarshal(progress, &task.Progress); err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to decode progress", err)
		}
	}
	if len(attributeKeys) > 0 {
		if err := json.Unmarshal(attributeKeys, &task.AttributeKeys); err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to decode attribute keys", err)
		}
	}
	if len(tags) > 0 {
		task.Tags = json.RawMessage(tags)
	}
	if len(categories) > 0 {
		task.Categories = json.RawMessage(categories)
	}

	return &task, nil
}

// marshalJSONColumn renders a map-valued field for a JSONB column.
// A nil map is stored as SQL NULL so absence round-trips.
func marshalJSONColumn(v any) (any, error) {
	switch m := v.(type) {
	case map[string]string:
		if m == nil {
			return nil, nil
		}
	case map[string]domain.AssetState:
		if m == nil {
			return nil, nil
		}
	case map[string]json.RawMessage:
		if m == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// rawJSONColumn renders an opaque raw-JSON field for a JSONB column.
func rawJSONColumn(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
