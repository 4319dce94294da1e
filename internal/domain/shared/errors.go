package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the offending input field for validation errors
	Field string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewPersistenceError wraps a failed atomic commit. This is the only error
// class a caller may safely retry.
func NewPersistenceError(op string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("%s could not be committed: %v", op, cause),
	}
}

// Domain error codes
const (
	ErrCodeValidation          = "VALIDATION"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodePersistence         = "PERSISTENCE_FAILED"
	ErrCodePeriodAlreadyClosed = "PERIOD_ALREADY_CLOSED"
	ErrCodeNothingToClose      = "NOTHING_TO_CLOSE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(ErrCodeAlreadyExists, "Resource already exists")
	ErrInvalidState        = NewDomainError(ErrCodeInvalidState, "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError(ErrCodeConcurrencyConflict, "Resource was modified by another process")
)
