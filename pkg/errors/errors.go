// Package errors provides structured error types for the Maskforge engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map the failure taxonomy of the build engine:
//   - CONFIGURATION_*: unknown profiles, factories, or parameters
//   - PORT_*: port declaration and connection failures
//   - KERNEL_*: geometry kernel failures
//   - CACHE_*: cell cache invariant violations
//   - NOT_FOUND / INTERNAL: lookups and everything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodePortDuplicate, "port %q already declared", name)
//	if errors.Is(err, errors.ErrCodePortDuplicate) {
//	    // Handle the construction error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeKernel, origErr, "extrude path on layer %s", layer)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the build-engine failure taxonomy.
const (
	// Configuration errors: bad or unknown inputs, surfaced immediately,
	// never retried.
	ErrCodeConfiguration    Code = "CONFIGURATION_ERROR"
	ErrCodeUnknownProfile   Code = "CONFIGURATION_UNKNOWN_PROFILE"
	ErrCodeUnknownFactory   Code = "CONFIGURATION_UNKNOWN_FACTORY"
	ErrCodeInvalidParameter Code = "CONFIGURATION_INVALID_PARAMETER"

	// Port errors: fatal for the build in progress, the cache key stays
	// unpopulated.
	ErrCodePort          Code = "PORT_ERROR"
	ErrCodePortDuplicate Code = "PORT_DUPLICATE"
	ErrCodePortUnknown   Code = "PORT_UNKNOWN"
	ErrCodePortLayer     Code = "PORT_LAYER_MISMATCH"
	ErrCodePortInvalid   Code = "PORT_INVALID"

	// Geometry kernel errors: propagated unchanged, build aborted, key
	// left empty for retry.
	ErrCodeKernel Code = "KERNEL_ERROR"

	// Cache errors: a non-pure builder produced a non-equal result for a
	// populated key. Fatal programming error.
	ErrCodeCacheConsistency Code = "CACHE_CONSISTENCY_ERROR"

	// Lookup and internal errors.
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
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

// IsConfiguration reports whether err belongs to the configuration family.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfiguration, ErrCodeUnknownProfile, ErrCodeUnknownFactory, ErrCodeInvalidParameter:
		return true
	}
	return false
}

// IsPort reports whether err belongs to the port family.
func IsPort(err error) bool {
	switch GetCode(err) {
	case ErrCodePort, ErrCodePortDuplicate, ErrCodePortUnknown, ErrCodePortLayer, ErrCodePortInvalid:
		return true
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
