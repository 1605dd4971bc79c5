package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context for reports
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithMetadata creates a domain error with metadata for reports.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// GetCode extracts the code from err, or CodeUnknown when err is not a
// domain error.
func GetCode(err error) Code {
	var de *Error
	if stderrors.As(err, &de) {
		return de.Code
	}
	return CodeUnknown
}

// ClassOf returns the recovery class of err.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// LogLine formats err for a log sink: error-level codes get an "error:"
// prefix and metadata is appended in key order.
func LogLine(err error) string {
	return LogLinef(err, "")
}

// LogLinef is LogLine with a formatted context placed between the level
// prefix and the error text.
func LogLinef(err error, format string, args ...any) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	code := GetCode(err)
	if code.ErrorLevel() {
		b.WriteString("error: ")
	}
	if format != "" {
		fmt.Fprintf(&b, format, args...)
		b.WriteString(": ")
	}
	b.WriteString(err.Error())
	var de *Error
	if stderrors.As(err, &de) && len(de.Metadata) > 0 {
		keys := make([]string, 0, len(de.Metadata))
		for k := range de.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, de.Metadata[k])
		}
	}
	return b.String()
}
