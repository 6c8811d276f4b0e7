package services

import "fmt"

// ValidationError rejects malformed input before any mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced student, due or payment does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError means the operation would violate a ledger invariant, e.g.
// overpaying a due or colliding on a ledger number.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func conflictErrorf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
