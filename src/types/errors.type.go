package types

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	ERR_INTERNAL ErrorKind = iota
	ERR_VALIDATION
	ERR_NOT_FOUND
	ERR_UNAUTHORIZED
	ERR_FORBIDDEN
	ERR_CONFLICT
	ERR_UNSUPPORTED_PROVIDER
	ERR_UPSTREAM
)

// AppError is an error whose Message is safe to return to API callers.
// The wrapped Err is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	switch e.Kind {
	case ERR_VALIDATION, ERR_CONFLICT, ERR_UNSUPPORTED_PROVIDER:
		return http.StatusBadRequest
	case ERR_NOT_FOUND:
		return http.StatusNotFound
	case ERR_UNAUTHORIZED:
		return http.StatusUnauthorized
	case ERR_FORBIDDEN:
		return http.StatusForbidden
	case ERR_UPSTREAM:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Kind: ERR_VALIDATION, Message: "invalid request", Fields: fields}
}

func NewFieldError(field string, message string) *AppError {
	return NewValidationError(map[string]string{field: message})
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ERR_NOT_FOUND, Message: message}
}

func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{Kind: ERR_UNAUTHORIZED, Message: message, Err: err}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ERR_FORBIDDEN, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ERR_CONFLICT, Message: message}
}

func NewUnsupportedProviderError(provider string) *AppError {
	return &AppError{Kind: ERR_UNSUPPORTED_PROVIDER, Message: "unsupported provider: " + provider}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: ERR_UPSTREAM, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: ERR_INTERNAL, Message: "internal server error", Err: err}
}

// AsAppError classifies any error, treating unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
