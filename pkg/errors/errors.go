package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Error codes raised by the scheduling core
const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrSchedulingConflict
	ErrInvalidState
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// HTTPStatus maps an error code to the status the REST surface reports.
// Scheduling conflicts and invalid-state transitions are client errors.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation, ErrSchedulingConflict, ErrInvalidState:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Validation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func Validationf(format string, args ...interface{}) *AppError {
	return &AppError{Code: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NotFoundf(err error, format string, args ...interface{}) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf(format, args...), Err: err}
}

func SchedulingConflict(message string) *AppError {
	return &AppError{Code: ErrSchedulingConflict, Message: message}
}

func SchedulingConflictf(format string, args ...interface{}) *AppError {
	return &AppError{Code: ErrSchedulingConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(message string) *AppError {
	return &AppError{Code: ErrInvalidState, Message: message}
}

func Unauthorized(err error) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: "unauthorized", Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
