// Package recent aggregates test-execution events into a configuration, suite
// and test hierarchy and selects the entries worth showing in a recent tests list.
//
// Data is a single-owner structure: it performs no locking, and callers that
// feed it from several goroutines must serialize access themselves.
package recent

import (
	"strings"
	"time"
)

// Kind identifies the level of an Entry in the hierarchy.
type Kind int

const (
	KindConfiguration Kind = iota
	KindSuite
	KindTest
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindSuite:
		return "suite"
	case KindTest:
		return "test"
	default:
		return "unknown"
	}
}

// Outcome is the result reported for a finished test.
type Outcome int

const (
	OutcomePassed Outcome = iota
	OutcomeFailed
	// OutcomeOther covers every severity that is neither a pass nor a failure
	// (ignored, terminated, errored, ...). It counts as failing for aggregation.
	OutcomeOther
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	default:
		return "other"
	}
}

// Failing reports whether the outcome marks its test and ancestors as failed.
func (o Outcome) Failing() bool {
	return o != OutcomePassed
}

// ParseOutcome maps an outcome name to an Outcome.
// Unrecognized names map to OutcomeOther.
func ParseOutcome(s string) Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passed", "pass", "ok", "success":
		return OutcomePassed
	case "failed", "fail", "failure":
		return OutcomeFailed
	default:
		return OutcomeOther
	}
}

// Configuration identifies the run configuration under which events occur.
type Configuration interface {
	UniqueID() string
	Name() string
}

// Entry is a node of a configuration tree.
type Entry struct {
	ID           string
	Presentation string
	Kind         Kind
	Timestamp    time.Time
	// Failed is true when this entry, or any test below it, last reported a failing outcome.
	Failed bool
	// Outcome is the latest outcome of a test entry. Unused for other kinds.
	Outcome Outcome

	parent   string // "" links to the configuration root
	children []string
	seq      int
	scope    *scope
}

// Parent returns the owning entry, or nil for a configuration entry.
func (e *Entry) Parent() *Entry {
	if e.scope == nil || e.Kind == KindConfiguration {
		return nil
	}
	if e.parent == "" {
		return e.scope.root
	}
	return e.scope.nodes[e.parent]
}

// Children returns the direct children in insertion order.
func (e *Entry) Children() []*Entry {
	if e.scope == nil {
		return nil
	}
	children := make([]*Entry, 0, len(e.children))
	for _, id := range e.children {
		if child, ok := e.scope.nodes[id]; ok {
			children = append(children, child)
		}
	}
	return children
}

// ChildCount returns the number of direct children.
func (e *Entry) ChildCount() int {
	return len(e.children)
}

// Configuration returns the root entry of the tree this entry belongs to.
func (e *Entry) Configuration() *Entry {
	if e.scope == nil {
		return nil
	}
	return e.scope.root
}

func (e *Entry) addChild(id string) {
	e.children = append(e.children, id)
}

func (e *Entry) removeChild(id string) {
	for i, c := range e.children {
		if c == id {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func (e *Entry) touch(ts time.Time) {
	if ts.After(e.Timestamp) {
		e.Timestamp = ts
	}
}
