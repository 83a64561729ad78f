// Package errors provides a lightweight structured error type (MastrenaError)
// for category-based classification in the HTTP adapter and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a Mastrena error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryMalformed  ErrorCategory = "malformed"
	CategoryOutOfRange ErrorCategory = "out_of_range"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"
	CategoryNotify  ErrorCategory = "notify"

	// Storage and analytics errors
	CategoryStorage   ErrorCategory = "storage"
	CategoryAnalytics ErrorCategory = "analytics"
	CategoryNotFound  ErrorCategory = "not_found"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// MastrenaError is a structured error with category, retryability, and context
type MastrenaError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MastrenaError
type ContextFields map[string]any

// Error implements the error interface
func (e *MastrenaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *MastrenaError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MastrenaError) WithContext(key string, value any) *MastrenaError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new MastrenaError
func New(category ErrorCategory, severity ErrorSeverity, message string) *MastrenaError {
	return &MastrenaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new MastrenaError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *MastrenaError {
	return &MastrenaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// Retryable creates a new retryable MastrenaError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *MastrenaError {
	return &MastrenaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable MastrenaError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *MastrenaError {
	return &MastrenaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if me, ok := err.(*MastrenaError); ok {
		return me.Category == category
	}
	return false
}

// IsValidation reports whether the error is either kind of parameter
// validation failure.
func IsValidation(err error) bool {
	return IsCategory(err, CategoryMalformed) || IsCategory(err, CategoryOutOfRange)
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if me, ok := err.(*MastrenaError); ok {
		return me.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a MastrenaError
func GetCategory(err error) ErrorCategory {
	if me, ok := err.(*MastrenaError); ok {
		return me.Category
	}
	return CategoryInternal
}
