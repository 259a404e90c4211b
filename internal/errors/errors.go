// Package errors provides the structured error types used across the
// freqwatch pipeline.
//
// Every failure that crosses a package boundary is a *FreqError carrying a
// category, a stable code, and a recoverability flag. The pipeline uses the
// flag to decide whether a failure aborts a single file or scan pass
// (recoverable) or has to surface to the operator (not recoverable).
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeIO        ErrorType = "io"
	ErrorTypeScan      ErrorType = "scan"
	ErrorTypeLifecycle ErrorType = "lifecycle"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeInternal  ErrorType = "internal"
)

// Error codes used across the pipeline.
const (
	ErrCodeScanFailed     = "SCAN_FAILED"
	ErrCodeReadFailed     = "READ_FAILED"
	ErrCodeAlreadyRunning = "ALREADY_RUNNING"
	ErrCodeNotRunning     = "NOT_RUNNING"
	ErrCodeInvalidConfig  = "INVALID_CONFIG"
	ErrCodeInternal       = "INTERNAL"
)

// FreqError is a structured error type with context.
type FreqError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Path        string
	Recoverable bool
}

// Error implements the error interface.
func (e *FreqError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *FreqError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *FreqError) Is(target error) bool {
	var t *FreqError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithPath adds the file or directory path the error relates to.
func (e *FreqError) WithPath(path string) *FreqError {
	e.Path = path

	return e
}

// ErrAlreadyRunning is returned by Controller.Start while a previous run's
// producer is still live. It is a user-facing warning, not a crash.
var ErrAlreadyRunning = &FreqError{
	Type:        ErrorTypeLifecycle,
	Code:        ErrCodeAlreadyRunning,
	Message:     "cannot start a new run: the previous producer is still running",
	Recoverable: true,
}

// Error creation functions

// NewScanError creates an error for a failed directory scan pass.
// Scan errors abort only the current pass; the producer keeps cycling.
func NewScanError(message string, cause error) *FreqError {
	return &FreqError{
		Type:        ErrorTypeScan,
		Code:        ErrCodeScanFailed,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewReadError creates an error for a per-file read failure during counting.
// Read errors abort only the affected file; the consumer keeps draining.
func NewReadError(path string, cause error) *FreqError {
	return &FreqError{
		Type:        ErrorTypeIO,
		Code:        ErrCodeReadFailed,
		Message:     "reading file failed",
		Cause:       cause,
		Path:        path,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string) *FreqError {
	return &FreqError{
		Type:        ErrorTypeConfig,
		Code:        ErrCodeInvalidConfig,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *FreqError {
	return &FreqError{
		Type:        ErrorTypeInternal,
		Code:        ErrCodeInternal,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// Error classification utilities

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var fe *FreqError
	if errors.As(err, &fe) {
		return fe.Recoverable
	}

	return false
}

// IsAlreadyRunning checks if an error is the re-entrant start guard firing.
func IsAlreadyRunning(err error) bool {
	return errors.Is(err, ErrAlreadyRunning)
}

// IsCancellation reports whether err is the result of a cancelled context,
// directly or through wrapping. Cancellation during stop or shutdown is the
// expected wind-down path, not a failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
