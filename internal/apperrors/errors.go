package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidPeriod indicates a report period whose start date is after its end date.
var ErrInvalidPeriod = errors.New("invalid period: start date is after end date")

// ErrUnknownAccount indicates an account-filtered request referencing a missing account.
var ErrUnknownAccount = errors.New("unknown account")

// ErrUnknownPerson indicates a student or teacher ID that does not exist.
var ErrUnknownPerson = errors.New("unknown person")

// ErrPartialWrite indicates a bulk write was aborted and rolled back.
var ErrPartialWrite = errors.New("bulk write aborted, no changes persisted")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
