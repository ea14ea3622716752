package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with configuration",
			err:      &Error{Configuration: "unit", Message: "show failed"},
			expected: "[unit] show failed",
		},
		{
			name:     "with configuration and command",
			err:      &Error{Configuration: "unit", Command: "record", Message: "journal locked"},
			expected: "[unit] record: journal locked",
		},
		{
			name:     "command without configuration not included",
			err:      &Error{Command: "build", Message: "something failed"},
			expected: "something failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	// Test nil cause
	errNoCause := &Error{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitRuntimeError},
		{"config", KindConfig, ExitConfigError},
		{"validation", KindValidation, ExitConfigError},
		{"not found", KindNotFound, ExitRuntimeError},
		{"environment", KindEnvironment, ExitEnvironmentError},
		{"tests failing", KindTestsFailing, ExitTestsFailing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	err := New("test error")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Message != "test error" {
		t.Errorf("Message = %q, want %q", err.Message, "test error")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("error %d: %s", 42, "details")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Message != "error 42: details" {
		t.Errorf("Message = %q, want %q", err.Message, "error 42: details")
	}
}

func TestConfig(t *testing.T) {
	err := Config("invalid config")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	if err.Message != "invalid config" {
		t.Errorf("Message = %q, want %q", err.Message, "invalid config")
	}
	if err.ExitCode() != ExitConfigError {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitConfigError)
	}
}

func TestConfigf(t *testing.T) {
	err := Configf("field %q: %s", "name", "is required")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	expected := `field "name": is required`
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(cause, "wrapped message")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Message != "wrapped message" {
		t.Errorf("Message = %q, want %q", err.Message, "wrapped message")
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return original cause")
	}
}

func TestConfigurationError(t *testing.T) {
	err := ConfigurationError("JUnit.all tests", "show", "no entries recorded")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Configuration != "JUnit.all tests" {
		t.Errorf("Configuration = %q, want %q", err.Configuration, "JUnit.all tests")
	}
	if err.Command != "show" {
		t.Errorf("Command = %q, want %q", err.Command, "show")
	}
	if err.Message != "no entries recorded" {
		t.Errorf("Message = %q, want %q", err.Message, "no entries recorded")
	}

	// Verify formatted error message
	expected := "[JUnit.all tests] show: no entries recorded"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("event file", "nonexistent")

	if err.Kind != KindNotFound {
		t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
	}
	expected := "event file not found: nonexistent"
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"Error runtime", New("runtime"), ExitRuntimeError},
		{"Error config", Config("config"), ExitConfigError},
		{"Error validation", &Error{Kind: KindValidation}, ExitConfigError},
		{"Error environment", Environment("locked"), ExitEnvironmentError},
		{"Error tests failing", TestsFailing(2), ExitTestsFailing},
		{"wrapped Error", fmt.Errorf("show: %w", Config("bad")), ExitConfigError},
		{"generic error", errors.New("generic"), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorKindConstants(t *testing.T) {
	// Verify error kinds have distinct values
	kinds := []ErrorKind{KindRuntime, KindConfig, KindNotFound, KindValidation, KindEnvironment, KindTestsFailing}
	seen := make(map[ErrorKind]bool)

	for _, k := range kinds {
		if seen[k] {
			t.Errorf("Duplicate ErrorKind value: %v", k)
		}
		seen[k] = true
	}
}

func TestExitCodeConstants(t *testing.T) {
	// Exit codes are part of the public contract
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitRuntimeError != 1 {
		t.Errorf("ExitRuntimeError = %d, want 1", ExitRuntimeError)
	}
	if ExitConfigError != 2 {
		t.Errorf("ExitConfigError = %d, want 2", ExitConfigError)
	}
	if ExitTestsFailing != 4 {
		t.Errorf("ExitTestsFailing = %d, want 4", ExitTestsFailing)
	}
}

func TestError_ErrorIncludesCause(t *testing.T) {
	err := Wrap(errors.New("permission denied"), "open journal")
	if got := err.Error(); got != "open journal: permission denied" {
		t.Errorf("Error() = %q, want %q", got, "open journal: permission denied")
	}
}

func TestValidation(t *testing.T) {
	cause := errors.New("line 3: missing id")
	err := Validation(cause, "invalid event file")

	if err.Kind != KindValidation {
		t.Errorf("Kind = %v, want %v", err.Kind, KindValidation)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.ExitCode() != ExitConfigError {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitConfigError)
	}
}
