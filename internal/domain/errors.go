package domain

import "errors"

// Sentinel errors for the workspace core - match with errors.Is().
//
// ErrNotFound deliberately covers both "does not exist" and "owned by
// someone else" so that callers cannot probe for other owners' items.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidID      = errors.New("invalid id format")
	ErrValidation     = errors.New("validation failed")
	ErrNoValidFields  = errors.New("no valid fields")
	ErrParentNotFound = errors.New("parent not found")
	ErrNotFound       = errors.New("not found")
)

// Validation error codes surfaced to clients.
const (
	CodeMissingFields = "missing_fields"
	CodeInvalidType   = "invalid_type"
)

// ValidationError is a payload-shape failure with a machine-readable code.
// It matches ErrValidation under errors.Is().
type ValidationError struct {
	Code    string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingFields builds a missing-required-field error.
func MissingFields(message string) *ValidationError {
	return &ValidationError{Code: CodeMissingFields, Message: message}
}

// InvalidType builds an unknown-item-kind error.
func InvalidType(message string) *ValidationError {
	return &ValidationError{Code: CodeInvalidType, Message: message}
}
