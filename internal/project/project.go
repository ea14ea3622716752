package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/recenttests/internal/config"
)

// Project represents a loaded recenttests workspace.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string

	// configPath is empty when the workspace has no config file.
	configPath string
}

// LoadProject finds and loads a workspace from the current directory.
// Without a config file anywhere up the tree, the working directory becomes
// the root and defaults apply.
func LoadProject() (*Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadProjectFromDir(cwd)
}

// LoadProjectFromDir is LoadProject starting the search at dir.
func LoadProjectFromDir(dir string) (*Project, error) {
	root, err := FindRootFrom(dir)
	if errors.Is(err, ErrNoProjectRoot) {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}
		return &Project{Root: abs, Config: config.Default()}, nil
	}
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a workspace from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	return LoadProjectWithConfig(root, filepath.Join(root, ConfigDirName, ConfigFileName))
}

// LoadProjectFromConfig loads the workspace that owns an explicit config
// file. See RootForConfig for how the root is chosen.
func LoadProjectFromConfig(configPath string) (*Project, error) {
	root, err := RootForConfig(configPath)
	if err != nil {
		return nil, err
	}
	return LoadProjectWithConfig(root, configPath)
}

// LoadProjectWithConfig loads a workspace rooted at root using an explicit config file.
func LoadProjectWithConfig(root, configPath string) (*Project, error) {
	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:       root,
		Config:     cfg,
		Warnings:   warnings,
		configPath: configPath,
	}, nil
}

// ConfigPath returns the full path to the workspace configuration file, or
// an empty string when defaults are in use.
func (p *Project) ConfigPath() string {
	return p.configPath
}

// JournalPath returns the absolute path of the event journal.
func (p *Project) JournalPath() string {
	path := config.DefaultJournalPath
	if p.Config.Journal != nil && p.Config.Journal.Path != "" {
		path = p.Config.Journal.Path
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// Separator returns the suite/test separator used when ingesting events.
func (p *Project) Separator() string {
	if p.Config.Ingest != nil && p.Config.Ingest.Separator != "" {
		return p.Config.Ingest.Separator
	}
	return config.DefaultSeparator
}
