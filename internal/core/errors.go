package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatSchema       ErrorCategory = "schema"       // Malformed or unsupported schema element
	ErrCatValidation   ErrorCategory = "validation"   // Control value cannot be coerced
	ErrCatCommand      ErrorCategory = "command"      // Backend rejected a dispatched command
	ErrCatConfirmation ErrorCategory = "confirmation" // Operator challenge mismatch
	ErrCatNetwork      ErrorCategory = "network"      // Transport-level failure
	ErrCatInternal     ErrorCategory = "internal"     // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]any
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// ErrSchema creates a schema error.
func ErrSchema(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatSchema,
		Code:     code,
		Message:  message,
	}
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrCommand creates a command error carrying the backend's detail text.
func ErrCommand(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatCommand,
		Code:     code,
		Message:  message,
	}
}

// ErrConfirmation creates a confirmation mismatch error.
func ErrConfirmation(message string) *DomainError {
	return &DomainError{
		Category: ErrCatConfirmation,
		Code:     CodeChallengeMismatch,
		Message:  message,
	}
}

// ErrNetwork creates a transport error.
func ErrNetwork(message string) *DomainError {
	return &DomainError{
		Category: ErrCatNetwork,
		Code:     "NETWORK",
		Message:  message,
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// Predefined error codes
const (
	CodeUnsupportedFieldType = "UNSUPPORTED_FIELD_TYPE"
	CodeDuplicateName        = "DUPLICATE_NAME"
	CodeUnknownToggle        = "UNKNOWN_TOGGLE"
	CodeBadNumber            = "BAD_NUMBER"
	CodeChallengeMismatch    = "CHALLENGE_MISMATCH"
	CodeCommandRejected      = "COMMAND_REJECTED"
	CodeBadResponse          = "BAD_RESPONSE"
)
