// Package errors provides structured error types for csvplot.
// Errors include context, causes, and actionable suggestions.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryInput    Category = "input"    // Menu prompt input errors
	CategoryTable    Category = "table"    // CSV discovery/loading errors
	CategoryPlot     Category = "plot"     // Chart building/rendering errors
	CategoryExport   Category = "export"   // Output file errors
	CategoryViewer   Category = "viewer"   // Interactive window errors
	CategoryConfig   Category = "config"   // Configuration loading/parsing errors
	CategoryIO       Category = "io"       // File/IO errors
	CategoryInternal Category = "internal" // Internal/unexpected errors
)

// CSVPlotError is a structured error with context and suggestions.
type CSVPlotError struct {
	// Code is a unique identifier for this error type (e.g., "INDEX_OUT_OF_RANGE")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
func (e *CSVPlotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *CSVPlotError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target for errors.Is() checks.
// Two CSVPlotErrors match if they have the same Code.
func (e *CSVPlotError) Is(target error) bool {
	if t, ok := target.(*CSVPlotError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new CSVPlotError with the given code, category, and message.
func New(code string, category Category, message string) *CSVPlotError {
	return &CSVPlotError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf creates a new CSVPlotError with a formatted message.
func Newf(code string, category Category, format string, args ...interface{}) *CSVPlotError {
	return New(code, category, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a CSVPlotError.
func Wrap(err error, code string, category Category, message string) *CSVPlotError {
	return New(code, category, message).WithCause(err)
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *CSVPlotError) WithContext(key, value string) *CSVPlotError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *CSVPlotError) WithCause(cause error) *CSVPlotError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation suggestion and returns the error for chaining.
func (e *CSVPlotError) WithSuggestion(suggestion string) *CSVPlotError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// HasContext returns true if the error has context information.
func (e *CSVPlotError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *CSVPlotError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns the context entries as sorted key="value" pairs.
func (e *CSVPlotError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
	}
	return strings.Join(parts, ", ")
}

// AsCSVPlotError finds the first CSVPlotError in err's chain.
func AsCSVPlotError(err error) (*CSVPlotError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *CSVPlotError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCategory checks if an error is a CSVPlotError with the given category.
func IsCategory(err error, category Category) bool {
	if ce, ok := AsCSVPlotError(err); ok {
		return ce.Category == category
	}
	return false
}

// IsCode checks if an error is a CSVPlotError with the given code.
func IsCode(err error, code string) bool {
	if ce, ok := AsCSVPlotError(err); ok {
		return ce.Code == code
	}
	return false
}
