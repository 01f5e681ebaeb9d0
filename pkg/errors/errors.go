// Package errors provides structured error types for relexplain.
//
// Errors carry a machine-readable [Code] so callers (the CLI, the HTTP
// server) can tell a malformed plan apart from a serializer defect without
// matching on message text.
//
// # Error Codes
//
// The explain core raises three kinds of failure:
//   - DUPLICATE_ASSIGNMENT: an id was assigned twice to the same node. This
//     is a driver defect and is never recovered from.
//   - UNRESOLVED_CHILD_REFERENCE: a child could not be visited (nil child or
//     a cycle in the plan). The session is aborted.
//   - COLLABORATOR_FAILURE: the plan tree or the document builder failed,
//     e.g. a value that cannot be rendered as JSON.
//
// Input handling around the core uses INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPlan, "unknown input %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidPlan) {
//	    // Handle bad plan file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCollaborator, origErr, "render %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPlan   Code = "INVALID_PLAN"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Explain session errors
	ErrCodeDuplicateAssignment Code = "DUPLICATE_ASSIGNMENT"
	ErrCodeUnresolvedChild     Code = "UNRESOLVED_CHILD_REFERENCE"
	ErrCodeCollaborator        Code = "COLLABORATOR_FAILURE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsFatal reports whether err signals a broken session rather than bad
// input: duplicate assignments and unresolved children.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateAssignment, ErrCodeUnresolvedChild:
		return true
	}
	return false
}
