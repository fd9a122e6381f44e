package anim

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes returned (or panicked with) by this package.
const (
	// Construction errors
	ErrCodeInvalidKeyframes Code = "INVALID_KEYFRAMES"
	ErrCodeInvalidDuration  Code = "INVALID_DURATION"
	ErrCodeMissingValue     Code = "MISSING_VALUE"
	ErrCodeUnsupportedType  Code = "UNSUPPORTED_TYPE"
	ErrCodeUnknownCurve     Code = "UNKNOWN_CURVE"

	// Caller contract breaches. These are panic values, never returned.
	ErrCodePrecondition Code = "PRECONDITION"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new Error wrapping an existing error.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// precondition panics with an ErrCodePrecondition error.
func precondition(format string, args ...any) {
	panic(NewError(ErrCodePrecondition, format, args...))
}
