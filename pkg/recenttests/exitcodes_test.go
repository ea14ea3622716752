package recenttests_test

import (
	"testing"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/pkg/recenttests"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", recenttests.ExitSuccess, 0},
		{"ExitFailure", recenttests.ExitFailure, 1},
		{"ExitConfigError", recenttests.ExitConfigError, 2},
		{"ExitEnvError", recenttests.ExitEnvError, 3},
		{"ExitTestsFailing", recenttests.ExitTestsFailing, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("recenttests.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in line with the ones
// the CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", recenttests.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", recenttests.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", recenttests.ExitConfigError, errors.ExitConfigError},
		{"EnvError/EnvironmentError", recenttests.ExitEnvError, errors.ExitEnvironmentError},
		{"TestsFailing", recenttests.ExitTestsFailing, errors.ExitTestsFailing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: public = %d, internal = %d", tt.public, tt.internal)
			}
		})
	}
}
