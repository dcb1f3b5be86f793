package utils

import (
	"errors"
	"fmt"
)

// ErrorKind tags a business failure so callers can branch without matching
// message strings.
type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindConflict     ErrorKind = "conflict"
	ErrorKindInternal     ErrorKind = "internal"
)

// AppError carries an error kind alongside a stable code and a human
// message. Services return it for every guarded failure; handlers map the
// kind to an HTTP status.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewValidationError(code, message string) *AppError {
	return &AppError{Kind: ErrorKindValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Code: code, Message: message}
}

func NewUnauthorizedError(code, message string) *AppError {
	return &AppError{Kind: ErrorKindUnauthorized, Code: code, Message: message}
}

func NewConflictError(code, message string) *AppError {
	return &AppError{Kind: ErrorKindConflict, Code: code, Message: message}
}

func NewInternalError(code, message string, cause error) *AppError {
	return &AppError{Kind: ErrorKindInternal, Code: code, Message: message, cause: cause}
}

// AsAppError extracts an AppError from an error chain. Unrecognized errors
// are reported as internal failures.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: ErrorKindInternal, Code: "INTERNAL_ERROR", Message: ErrInternalServer, cause: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
