// Package errors provides structured error types for pkgtrust.
//
// This package defines error codes and types that enable:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes that abort a batch are:
//   - INVALID_REFERENCE_KIND: an input line is neither a repository URL nor a registry package URL
//   - REPOSITORY_URL_NOT_FOUND: a registry manifest carries no repository link
//   - MALFORMED_URL: a canonical URL lacks the owner/repository segments
//   - ARITY_MISMATCH: the composite scorer received tuples of the wrong length
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidReferenceKind, "unsupported reference: %s", line)
//	if errors.Is(err, errors.ErrCodeInvalidReferenceKind) {
//	    // Handle bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidReferenceKind Code = "INVALID_REFERENCE_KIND"
	ErrCodeMalformedURL         Code = "MALFORMED_URL"
	ErrCodeInvalidProfile       Code = "INVALID_PROFILE"

	// Resolution errors
	ErrCodeRepositoryURLNotFound Code = "REPOSITORY_URL_NOT_FOUND"
	ErrCodeNotFound              Code = "NOT_FOUND"
	ErrCodeFileNotFound          Code = "FILE_NOT_FOUND"

	// Scoring errors
	ErrCodeArityMismatch Code = "ARITY_MISMATCH"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and message.
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

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message.
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

// Is checks if an error has the given code.
// It unwraps the error chain to find an *Error with matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the Message field.
// For other errors, returns the error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError indicates the hosting API refused a request because the
// caller exhausted its quota.
type RateLimitedError struct {
	RetryAfter int // Seconds until the quota resets, when known
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for rate limiting.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
