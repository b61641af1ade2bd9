package api

import (
	"errors"
	"net/http"

	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/service"
	"github.com/vottdot/vottdot-server/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Files report absence as 204 with an empty body, by the consuming
	// client's convention.
	case errors.Is(err, service.ErrFileNotFound),
		errors.Is(err, store.ErrFileNotFound):
		return http.StatusNoContent

	// Bad request errors
	case errors.Is(err, service.ErrInvalidTask),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAssetState),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrFileNotFound),
		errors.Is(err, store.ErrFileNotFound):
		return "File not found"

	case errors.Is(err, service.ErrInvalidTask):
		// The wrapped sentinel names the missing field; it carries no
		// internal detail, so surfacing it helps the client.
		return err.Error()

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task ID"

	case errors.Is(err, domain.ErrInvalidAssetState):
		return "Invalid asset state"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
