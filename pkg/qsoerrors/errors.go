// Package qsoerrors provides structured error handling for qsopipe.
//
// Not every failure in this system is an error: malformed tags are
// skipped by the scanner and rejected records are dropped by the
// normalizer, both silently. Errors exist for the remaining cases:
// configuration problems, storage failures, and contract violations
// such as a negative worker count.
package qsoerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents input validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents data processing errors
	ErrorTypeData ErrorType = "data"
	// ErrorTypeStorage represents persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeContract represents caller contract violations; these are
	// programming errors and are never retried or recovered from.
	ErrorTypeContract ErrorType = "contract"
)

// Error is a structured error with a category, an optional cause, and
// the call site it was created at.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}

	function string
	file     string
	line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Origin returns the function, file and line the error was created at.
func (e *Error) Origin() (function, file string, line int) {
	return e.function, e.file, e.line
}

// WithDetail attaches a key-value detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an error with the given type and message.
func New(errType ErrorType, message string) *Error {
	e := &Error{Type: errType, Message: message}
	e.capture(2)
	return e
}

// Newf creates an error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	e := &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
	e.capture(2)
	return e
}

// Wrap wraps an existing error with a category and context message.
// Returns nil when err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	e := &Error{Type: errType, Message: message, Cause: err}
	e.capture(2)
	return e
}

// IsType reports whether err (or anything it wraps) has the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

func (e *Error) capture(skip int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return
	}
	e.file = file
	e.line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		e.function = fn.Name()
	}
}
