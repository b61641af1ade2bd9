package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the services.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrFileNotFound indicates that the file metadata does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidTask indicates that a task failed required-field validation.
	// The wrapped error names the missing field.
	ErrInvalidTask = errors.New("invalid task")
)

// ServiceError wraps errors from a service with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "save_task", "delete_file")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. Known sentinel errors are
// returned directly without wrapping so callers can match on them.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrInvalidTask) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
