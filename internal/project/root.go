// Package project provides workspace discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the recenttests configuration directory.
const ConfigDirName = ".recenttests"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.json"

// ErrNoProjectRoot is returned when .recenttests/config.json is not found.
var ErrNoProjectRoot = errors.New(".recenttests/config.json not found in the working directory or any parent")

// RootForConfig returns the workspace root for a config file: the parent of
// its .recenttests directory, or the directory holding the file otherwise.
func RootForConfig(configPath string) (string, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir), nil
	}
	return dir, nil
}

// FindRootFrom walks up from the given directory until it finds .recenttests/config.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
