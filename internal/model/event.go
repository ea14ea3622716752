// Package model provides shared data types used across multiple internal packages.
// This package exists to break import cycles between packages like events, store
// and watch that need to share type definitions.
package model

import (
	"fmt"
	"time"
)

// Configuration is a run configuration as seen by event producers.
type Configuration struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"name,omitempty" yaml:"name,omitempty"`
}

// UniqueID returns the configuration's unique identifier.
func (c Configuration) UniqueID() string {
	return c.ID
}

// Name returns the display name. It is empty when the event carries none,
// so an earlier name for the same configuration stays in effect.
func (c Configuration) Name() string {
	return c.DisplayName
}

// EventKind distinguishes suite events from test events.
type EventKind string

const (
	EventSuite EventKind = "suite"
	EventTest  EventKind = "test"
)

// Event is a single test-execution event.
type Event struct {
	Kind          EventKind     `json:"kind" yaml:"kind"`
	ID            string        `json:"id" yaml:"id"`
	Outcome       string        `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Time          time.Time     `json:"time" yaml:"time"`
	Configuration Configuration `json:"configuration" yaml:"configuration"`
}

// Validate reports the first missing or inconsistent field.
func (e Event) Validate() error {
	switch e.Kind {
	case EventSuite, EventTest:
	case "":
		return fmt.Errorf("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	if e.ID == "" {
		return fmt.Errorf("missing id")
	}
	if e.Configuration.ID == "" {
		return fmt.Errorf("%s %q: missing configuration id", e.Kind, e.ID)
	}
	if e.Time.IsZero() {
		return fmt.Errorf("%s %q: missing time", e.Kind, e.ID)
	}
	if e.Kind == EventTest && e.Outcome == "" {
		return fmt.Errorf("test %q: missing outcome", e.ID)
	}
	return nil
}
