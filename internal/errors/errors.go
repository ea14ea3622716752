// Package errors provides structured error types and exit codes for recenttests.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (unreadable event file, journal failure, etc.)
	ExitConfigError      = 2 // Configuration error (invalid config, invalid flags, etc.)
	ExitEnvironmentError = 3 // Environment error (journal locked, watch unsupported, etc.)
	ExitTestsFailing     = 4 // A failing test is among the entries shown
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
	KindTestsFailing
)

// Error is the base error type for recenttests.
type Error struct {
	Kind          ErrorKind
	Message       string
	Configuration string // Run configuration ID if applicable
	Command       string // Command name if applicable
	Cause         error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Configuration != "" && e.Command != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Configuration, e.Command, msg)
	}
	if e.Configuration != "" {
		return fmt.Sprintf("[%s] %s", e.Configuration, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	case KindTestsFailing:
		return ExitTestsFailing
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Validation wraps a validation failure of user-supplied input.
func Validation(err error, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Cause:   err,
	}
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// ConfigurationError creates an error for a specific run configuration.
func ConfigurationError(configuration, command, message string) *Error {
	return &Error{
		Kind:          KindRuntime,
		Configuration: configuration,
		Command:       command,
		Message:       message,
	}
}

// TestsFailing reports that the shown entries include failing tests.
func TestsFailing(count int) *Error {
	return &Error{
		Kind:    KindTestsFailing,
		Message: fmt.Sprintf("%d configuration(s) with failing tests", count),
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
