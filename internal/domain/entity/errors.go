package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
// Callers classify failures with errors.Is against these kinds.
var (
	// ErrNotFound indicates that a referenced aggregate, content pair, language or link does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates a uniqueness clash, e.g. a second content record for the same language
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates that the caller lacks the permission for an operation
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated indicates a missing or invalid caller identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// DomainError carries an operator-readable message together with its error kind.
// The message is returned verbatim by Error so it can be shown to API clients.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NotFound builds a DomainError of kind ErrNotFound.
func NotFound(format string, args ...any) error {
	return &DomainError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a DomainError of kind ErrConflict.
func Conflict(format string, args ...any) error {
	return &DomainError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a DomainError of kind ErrForbidden.
func Forbidden(format string, args ...any) error {
	return &DomainError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated builds a DomainError of kind ErrUnauthenticated.
func Unauthenticated(format string, args ...any) error {
	return &DomainError{Kind: ErrUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// IsDomainError reports whether err belongs to one of the client-facing kinds.
// Such errors are terminal for the request and never count as infrastructure failures.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidInput)
}
