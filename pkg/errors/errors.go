// Package errors provides structured error types for the growthchart application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, CLI and HTTP server
//   - Machine-readable error codes carried into layout results
//   - User-friendly error messages shown in place of the chart
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout codes describe why a layout pass could not complete or why a single
// growth indicator group was skipped:
//   - DATA_ERROR: raw input lacks a required role or the table is empty
//   - SELECTOR_NOT_FOUND / INVALID_SELECTOR_ORDER / GROWTH_UNDEFINED: per indicator group
//   - SCALE_OVERRIDE_INVALID: explicit axis maximum below the computed one
//   - GEOMETRY_DEGENERATE: the draw area or bandwidth collapsed to zero
//
// Ambient codes follow the INVALID_* / NOT_FOUND / NETWORK_* / INTERNAL_* scheme.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSelectorNotFound, "growth selector %q not found", sel)
//	if errors.Is(err, errors.ErrCodeSelectorNotFound) {
//	    // skip the indicator group
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors
	ErrCodeData                 Code = "DATA_ERROR"
	ErrCodeSelectorNotFound     Code = "SELECTOR_NOT_FOUND"
	ErrCodeInvalidSelectorOrder Code = "INVALID_SELECTOR_ORDER"
	ErrCodeGrowthUndefined      Code = "GROWTH_UNDEFINED"
	ErrCodeScaleOverrideInvalid Code = "SCALE_OVERRIDE_INVALID"
	ErrCodeGeometryDegenerate   Code = "GEOMETRY_DEGENERATE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// IsLayout reports whether code belongs to the layout taxonomy rather than
// the ambient input/network/internal codes.
func IsLayout(code Code) bool {
	switch code {
	case ErrCodeData, ErrCodeSelectorNotFound, ErrCodeInvalidSelectorOrder,
		ErrCodeGrowthUndefined, ErrCodeScaleOverrideInvalid, ErrCodeGeometryDegenerate:
		return true
	}
	return false
}
