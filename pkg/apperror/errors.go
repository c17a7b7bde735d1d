package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error independently of its HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind         `json:"-"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the collaborator error an upstream failure was built from
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Kind: KindForbidden, Code: http.StatusForbidden, Message: "Forbidden"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrAccountInactive    = &AppError{Kind: KindForbidden, Code: http.StatusForbidden, Message: "Account is deactivated"}
	ErrInvalidToken       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewBadRequestError reports a missing or malformed input
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewDuplicateError is a conflict reported with 400, the status the
// dashboard expects for duplicate invoices, mobiles and price entries.
func NewDuplicateError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    http.StatusUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Code:    http.StatusForbidden,
		Message: message,
	}
}

// NewUpstreamError wraps a persistence or notification failure. The
// collaborator's message is passed through to the caller.
func NewUpstreamError(message string, cause error) *AppError {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &AppError{
		Kind:    KindUpstream,
		Code:    http.StatusInternalServerError,
		Message: message,
		cause:   cause,
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

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
		cause:   err,
	}
}
