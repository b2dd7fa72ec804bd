package domain

import (
	"errors"
	"fmt"
)

// Common errors that services and adapters can return.
var (
	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyRunning is returned when starting a visualizer that is already running.
	ErrAlreadyRunning = errors.New("visualizer already running")

	// ErrSourceClosed is returned when reading from a closed sample source.
	ErrSourceClosed = errors.New("sample source closed")

	// ErrUnsupportedFormat is returned when an audio file cannot be read as PCM.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidConfig is returned when configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SourceError represents a failure reading samples from a source.
type SourceError struct {
	Op     string // Operation that failed (e.g., "open", "take")
	Source string // Source name or file path
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("sample source %s failed for '%s': %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("sample source %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(op, source string, err error) *SourceError {
	return &SourceError{Op: op, Source: source, Err: err}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "VisualizerService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
