// Package recenttests provides public constants for tools that wrap the
// recenttests CLI.
package recenttests

// Exit codes returned by the recenttests CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (unreadable event file, journal error, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration or usage error.
	ExitConfigError = 2

	// ExitEnvError indicates an environment error such as a journal locked by another process.
	ExitEnvError = 3

	// ExitTestsFailing is returned by "show --fail-on-failure" when a failing test is listed.
	ExitTestsFailing = 4
)
