package sessionauth

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies an authentication failure
type ErrorCode string

const (
	ErrUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrWrongPassword    ErrorCode = "WRONG_PASSWORD"
	ErrMissingToken     ErrorCode = "MISSING_TOKEN"
	ErrExpired          ErrorCode = "EXPIRED"
	ErrInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	ErrMalformed        ErrorCode = "MALFORMED"
	ErrForbidden        ErrorCode = "FORBIDDEN"
	ErrConfigError      ErrorCode = "CONFIG_ERROR"
	ErrInternal         ErrorCode = "INTERNAL"
)

// AuthError represents an authentication or authorization failure with a
// code, a client-safe message and an optional wrapped internal error
type AuthError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *AuthError) Unwrap() error {
	return e.Internal
}

// HTTPStatus maps the error code onto the status the session boundary
// returns. Internal detail never leaves the process; only Code and Message
// are client-visible.
func (e *AuthError) HTTPStatus() int {
	switch e.Code {
	case ErrUserNotFound:
		return http.StatusNotFound
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConfigError, ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(code ErrorCode, message string, internal error) *AuthError {
	return &AuthError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}
