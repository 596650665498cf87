package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates an operation that is not allowed in the resource's current lifecycle state,
// e.g. posting a ledger that is already posted or editing entries of a posted ledger.
var ErrInvalidState = errors.New("invalid state")

// ErrConsistency indicates persisted state that disagrees with what was just computed or written.
// It only arises from bugs or concurrent tampering; the surrounding transaction must be aborted.
var ErrConsistency = errors.New("consistency error")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a message alongside the underlying error.
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

// Is lets errors.Is match AppErrors against the sentinel matching their code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrInvalidState
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewConsistencyError builds an AppError that matches ErrConsistency.
func NewConsistencyError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrConsistency}
}
