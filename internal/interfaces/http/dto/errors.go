package dto

import (
	"net/http"

	"github.com/advoga/backend/internal/domain/shared"
)

// Transport-level error codes. Domain error codes pass through unchanged;
// these cover failures that never reach the domain layer.
const (
	// ErrCodeInternal is used for unexpected internal errors
	ErrCodeInternal = "INTERNAL"
	// ErrCodeBadRequest is used for malformed request bodies and parameters
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,

	shared.ErrCodeValidation:    http.StatusBadRequest,
	shared.ErrCodeNotFound:      http.StatusNotFound,
	shared.ErrCodeAlreadyExists: http.StatusConflict,

	// A closed period and an optimistic-lock failure are both conflicts
	// with state the caller has not seen yet.
	shared.ErrCodePeriodAlreadyClosed: http.StatusConflict,
	shared.ErrCodeConcurrencyConflict: http.StatusConflict,

	// The request was well formed but the domain rejects it.
	shared.ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	shared.ErrCodeNothingToClose: http.StatusUnprocessableEntity,

	// A failed commit is transient; the client may retry.
	shared.ErrCodePersistence: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
