package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain-rule violation error carrying the
// offending field. Validation failures are never retried automatically.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION",
		Field:   field,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")

	// ErrConcurrency signals lock contention on a shared row. The whole
	// transaction should be retried by the caller, never by the core.
	ErrConcurrency = NewDomainError("CONCURRENCY", "Could not acquire lock on shared resource")

	// ErrImmutableRecord signals a mutation attempt on an append-only record.
	ErrImmutableRecord = NewDomainError("IMMUTABLE_RECORD", "Record cannot be modified or deleted")

	// ErrReferentialIntegrity signals a delete blocked by dependent records.
	ErrReferentialIntegrity = NewDomainError("REFERENTIAL_INTEGRITY", "Record has dependent records and cannot be deleted")
)

// IsValidation reports whether err is a field-level domain rule violation.
func IsValidation(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == "VALIDATION"
}
