// Package errors provides structured error types for the canopy application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the tree operations
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the taxonomy of the tree operations:
//   - INVALID_SELECTION / AMBIGUOUS_NODE: the user named the wrong node(s)
//   - INVALID_DESCRIPTOR / *_NOT_FOUND: hierarchy metadata problems
//   - INVALID_GEOMETRY: a placement request that cannot produce valid bounds
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSelection, "node %q is not decorated", ref)
//	if errors.Is(err, errors.ErrCodeInvalidSelection) {
//	    // Handle selection error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDescriptor, origErr, "decode node %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Selection errors, reported before any canvas mutation.
	ErrCodeInvalidSelection Code = "INVALID_SELECTION"
	ErrCodeAmbiguousNode    Code = "AMBIGUOUS_NODE"
	ErrCodeRootSibling      Code = "ROOT_HAS_NO_SIBLINGS"

	// Descriptor errors: malformed or missing hierarchy metadata.
	ErrCodeDescriptor     Code = "INVALID_DESCRIPTOR"
	ErrCodeNodeNotFound   Code = "NODE_NOT_FOUND"
	ErrCodeParentNotFound Code = "PARENT_NOT_FOUND"
	ErrCodePageNotFound   Code = "PAGE_NOT_FOUND"

	// Geometry errors, reported before any shape is created.
	ErrCodeGeometry Code = "INVALID_GEOMETRY"

	// Input/configuration errors.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Internal errors.
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
