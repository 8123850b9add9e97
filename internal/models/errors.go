package models

import "fmt"

// ValidationError indicates bad input: a ratio sum that is not 100, exact
// shares that do not sum to the amount, a non-member participant, and so on.
// Surfaced before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError indicates a referenced group, expense, or user does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates the caller is not a member of the group the
// operation targets.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ConsistencyError indicates an internal invariant failed after computation
// (e.g., shares not summing to the expense amount). This is a programming
// defect, not bad input, and aborts the operation before anything persists.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrConsistency creates a ConsistencyError with a formatted message.
func ErrConsistency(format string, args ...interface{}) *ConsistencyError {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}
