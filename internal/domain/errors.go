// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// The entity-specific errors below wrap it, so callers can match the
	// whole class with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidAssetState is returned when an asset state is not one of
	// the known enumeration values.
	ErrInvalidAssetState = errors.New("invalid asset state")
)

// Task-specific validation errors. The required-URL checks mirror what the
// annotation client needs to bootstrap a project: without any one of these
// the task is unusable.
var (
	ErrTaskIDEmpty             = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrTaskStellaURLEmpty      = fmt.Errorf("%w: task stella URL cannot be empty", ErrValidation)
	ErrTaskVottBackendURLEmpty = fmt.Errorf("%w: task VoTT backend URL cannot be empty", ErrValidation)
	ErrTaskImageServerURLEmpty = fmt.Errorf("%w: task image server URL cannot be empty", ErrValidation)
	ErrTaskServerURLEmpty      = fmt.Errorf("%w: task server URL cannot be empty", ErrValidation)
)

// File-specific validation errors.
var (
	ErrFileNameEmpty = fmt.Errorf("%w: file name cannot be empty", ErrValidation)
	ErrFileUUIDEmpty = fmt.Errorf("%w: file uuid cannot be empty", ErrValidation)
)
