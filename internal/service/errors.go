package service

import "errors"

// ErrorKind classifies allocation workflow failures so the HTTP boundary
// can map them to status codes without string matching.
type ErrorKind string

const (
	ErrKindNotFound           ErrorKind = "not_found"
	ErrKindAlreadyProcessed   ErrorKind = "already_processed"
	ErrKindRoomFull           ErrorKind = "room_full"
	ErrKindCapacityViolation  ErrorKind = "capacity_violation"
	ErrKindInvalidInput       ErrorKind = "invalid_input"
	ErrKindBelowMinimumNotice ErrorKind = "below_minimum_notice"
	ErrKindNotOnNotice        ErrorKind = "not_on_notice"
	ErrKindNotActive          ErrorKind = "not_active"
	ErrKindConflict           ErrorKind = "conflict"
	ErrKindInternal           ErrorKind = "internal"
)

// ServiceError is the typed error returned by all service operations.
// Message is safe to show to the caller; Err carries the underlying cause
// for logging and is never exposed.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a typed service error
func NewServiceError(kind ErrorKind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

// WrapInternal wraps an infrastructure failure. The caller-facing message
// stays generic; the cause is preserved for logging.
func WrapInternal(message string, err error) *ServiceError {
	return &ServiceError{Kind: ErrKindInternal, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to internal for untyped errors
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ErrKindInternal
}
