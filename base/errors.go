// Package base defines the error kinds shared across the module.
//
// Failures split into two kinds. ValidationError covers input-dependent
// conditions a caller can recover from by supplying different input, such
// as a malformed encoding or an out-of-range derived value. UsageError
// covers precondition violations in how the API was called, such as a
// missing builder parameter. Specific failures are exported as package
// level sentinels built from these kinds, so errors.Is matches the exact
// condition and errors.As matches the kind.
package base

import "errors"

// ValidationError is the kind for recoverable, input-dependent failures.
type ValidationError struct {
	Msg string
	Err error
}

// NewValidationError returns a ValidationError with the given message and
// no underlying cause. Intended for package-level sentinel declarations.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UsageError is the kind for caller precondition violations. These signal
// misuse of the API rather than bad data, and are not expected to be
// retried with different input at runtime.
type UsageError struct {
	Msg string
	Err error
}

// NewUsageError returns a UsageError with the given message and no
// underlying cause. Intended for package-level sentinel declarations.
func NewUsageError(msg string) *UsageError {
	return &UsageError{Msg: msg}
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether any error in err's chain is a
// ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUsage reports whether any error in err's chain is a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
