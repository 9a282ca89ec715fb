// Package errors provides the structured error type shared by every
// rotor package. Errors carry a stable code so callers and tests can
// branch on the kind of failure without matching message text.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Reconciliation errors
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	ErrInvalidData      ErrorCode = "INVALID_DATA"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrIO               ErrorCode = "IO"
	ErrUnsupportedEntry ErrorCode = "UNSUPPORTED_ENTRY"
	ErrCommandFailed    ErrorCode = "COMMAND_FAILED"
	ErrAggregateFailure ErrorCode = "AGGREGATE_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// RotorError represents a structured error with code and details
type RotorError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RotorError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RotorError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a RotorError with the same code.
func (e *RotorError) Is(target error) bool {
	var targetErr *RotorError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RotorError with the given code and message
func New(code ErrorCode, message string) *RotorError {
	return &RotorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RotorError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RotorError {
	return &RotorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RotorError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &RotorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &RotorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RotorError) WithDetail(key string, value interface{}) *RotorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rotorErr *RotorError
	if errors.As(err, &rotorErr) {
		return rotorErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RotorError
func GetErrorCode(err error) ErrorCode {
	var rotorErr *RotorError
	if errors.As(err, &rotorErr) {
		return rotorErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RotorError
func GetErrorDetails(err error) map[string]interface{} {
	var rotorErr *RotorError
	if errors.As(err, &rotorErr) {
		return rotorErr.Details
	}
	return nil
}

// WrapIO wraps a filesystem error, classifying it as ErrNotFound,
// ErrAlreadyExists or ErrIO from the underlying cause.
func WrapIO(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	code := ErrIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrNotFound
	case errors.Is(err, fs.ErrExist):
		code = ErrAlreadyExists
	}
	return Wrapf(err, code, format, args...)
}
