package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the operation conflicts with the resource's current
// state, e.g. cancelling an operation that is already cancelled.
var ErrConflict = errors.New("conflict with current state")

// ErrIntegrity indicates stored data violates an invariant the code relies
// on (e.g. a reversal found a different number of original ledger entries
// than the operation must have produced). Never guessed around; the
// enclosing unit aborts.
var ErrIntegrity = errors.New("data integrity violation")

// ErrInternal is returned to callers when the real cause must stay in the
// diagnostics rather than the response.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and message for the
// transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
