package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies where an error originated.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindAPI          Kind = "api"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
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

// Is matches on kind so errors.Is(err, ErrUnauthorized) works for any unauthorized error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Common errors
var (
	ErrUnauthorized   = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrTokenExpired   = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrNoSession      = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Session not found"}
	ErrInternalServer = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewNetworkError wraps a failure where the request never reached or returned from the backend.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Kind:    KindNetwork,
		Code:    http.StatusBadGateway,
		Message: "Backend unreachable",
		Err:     err,
	}
}

// NewAPIError reports a backend response whose status was not "Success".
func NewAPIError(message string) *AppError {
	if message == "" {
		message = "Request failed"
	}
	return &AppError{
		Kind:    KindAPI,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	msg := "Validation failed"
	if len(fieldErrors) == 1 {
		msg = fieldErrors[0].Message
	}
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a single-field validation error.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNetwork(err error) bool      { return KindOf(err) == KindNetwork }
func IsAPI(err error) bool          { return KindOf(err) == KindAPI }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Err:     err,
	}
}
