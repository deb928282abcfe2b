// Package errors provides structured error types for slabtower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Brick snapshots fail in two ways. A line or endpoint pair that cannot
// describe a straight brick is reported as [ErrCodeMalformedInput]. A
// snapshot whose bricks overlap is reported as [ErrCodeCollision], usually as a
// [*CollisionError] carrying the contested cell. Neither is recovered: both
// mean the input is inconsistent.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "line %d: %q", n, line)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "open store %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Simulation errors
	ErrCodeCollision Code = "COLLISION"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// coder is implemented by error types that carry their own code.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types it joins the message with the messages of its causes,
// without code prefixes. For other errors it returns the error string minus
// any code prefix.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		if code := GetCode(err); code != "" {
			return strings.TrimPrefix(err.Error(), string(code)+": ")
		}
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	cause := UserMessage(e.Cause)
	if e.Message == "" {
		return cause
	}
	return e.Message + ": " + cause
}

// CollisionError reports two bricks required to occupy the same unit cell.
type CollisionError struct {
	X, Y, Z  int // Contested cell
	Occupant int // Brick already holding the cell
	Intruder int // Brick that tried to enter it
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: brick %d collides with brick %d at %d,%d,%d",
		ErrCodeCollision, e.Intruder, e.Occupant, e.X, e.Y, e.Z)
}

// Code returns the error code for this error type.
func (e *CollisionError) Code() Code {
	return ErrCodeCollision
}
