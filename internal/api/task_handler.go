// Package api implements the HTTP handlers for the annotation backend.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vottdot/vottdot-server/internal/api/shared"
	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.FindAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.FindOne(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// saveTaskKey is the part of a save body that must be present up front:
// every other field may be filled by the merge, but the ID addresses the
// row being upserted.
type saveTaskKey struct {
	ID uuid.UUID `validate:"required"`
}

// SaveTask handles PUT /tasks and POST /tasks requests.
// Both verbs perform the same upsert-with-merge; the persisted
// representation is returned.
func (h *TaskHandler) SaveTask(w http.ResponseWriter, r *http.Request) {
	var task domain.Task
	if err := shared.DecodeJSON(r, &task); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(saveTaskKey{ID: task.ID}); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusBadRequest, "Task ID is required", err)
		return
	}

	saved, err := h.taskService.Save(r.Context(), &task)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskID parses the {id} URL parameter, answering 400 on malformed IDs.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		wrapped := fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(wrapped), GetSafeErrorMessage(wrapped), wrapped)
		return uuid.Nil, false
	}
	return id, true
}
