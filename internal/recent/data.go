package recent

import (
	"time"
)

// DefaultSeparator splits a test path into its suite path and test name.
const DefaultSeparator = "."

// Options configures a Data aggregator.
type Options struct {
	// Separator between the suite path and the test name in a test identifier.
	// Defaults to DefaultSeparator.
	Separator string
}

// Data holds one entry tree per run configuration.
type Data struct {
	opts   Options
	scopes map[string]*scope
	order  []string // configuration IDs in first-seen order
	seq    int
}

// scope is the arena of entries belonging to one run configuration.
// Entries refer to their parent by ID; nodes owns them.
type scope struct {
	root  *Entry
	nodes map[string]*Entry
}

// New creates an empty aggregator with default options.
func New() *Data {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty aggregator.
func NewWithOptions(opts Options) *Data {
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	return &Data{
		opts:   opts,
		scopes: make(map[string]*scope),
	}
}

// AddSuite records that a suite ran under the given configuration.
// The configuration entry is created on first sight. Tests recorded earlier
// without an enclosing suite are moved under the suite when it is created.
// It returns nil and records nothing when suiteID already names a test.
func (d *Data) AddSuite(suiteID string, ts time.Time, cfg Configuration) *Entry {
	sc := d.scopeFor(cfg, ts)
	suite, created := d.upsert(sc, suiteID, KindSuite, ts, "")
	if suite == nil {
		return nil
	}
	if created {
		d.adoptOrphans(sc, suite)
	}
	sc.touch(suite, ts)
	return suite
}

// AddTest records a finished test under the given configuration.
// The test is attached to its suite when that suite is registered in the same
// configuration, otherwise directly to the configuration entry.
// It returns nil and records nothing when testID already names a suite.
func (d *Data) AddTest(testID string, outcome Outcome, ts time.Time, cfg Configuration) *Entry {
	sc := d.scopeFor(cfg, ts)

	parent := ""
	if suiteID, ok := suiteIDFor(testID, d.opts.Separator); ok {
		if suite, exists := sc.nodes[suiteID]; exists && suite.Kind == KindSuite {
			parent = suiteID
		}
	}

	test, _ := d.upsert(sc, testID, KindTest, ts, parent)
	if test == nil {
		return nil
	}
	sc.markOutcome(test, outcome, ts)
	return test
}

// Configurations returns the configuration entries in first-seen order.
func (d *Data) Configurations() []*Entry {
	roots := make([]*Entry, 0, len(d.order))
	for _, id := range d.order {
		roots = append(roots, d.scopes[id].root)
	}
	return roots
}

// Lookup finds an entry by ID within a configuration.
func (d *Data) Lookup(configID, id string) (*Entry, bool) {
	sc, ok := d.scopes[configID]
	if !ok {
		return nil, false
	}
	if e, ok := sc.nodes[id]; ok {
		return e, true
	}
	if id == configID {
		return sc.root, true
	}
	return nil, false
}

// Walk visits every entry depth-first, configurations in first-seen order and
// children in insertion order. Returning false from fn skips the entry's children.
func (d *Data) Walk(fn func(e *Entry, depth int) bool) {
	for _, id := range d.order {
		walk(d.scopes[id].root, 0, fn)
	}
}

func walk(e *Entry, depth int, fn func(e *Entry, depth int) bool) {
	if !fn(e, depth) {
		return
	}
	for _, child := range e.Children() {
		walk(child, depth+1, fn)
	}
}

// scopeFor returns the tree of cfg, creating its configuration entry on first use.
func (d *Data) scopeFor(cfg Configuration, ts time.Time) *scope {
	id := cfg.UniqueID()
	sc, ok := d.scopes[id]
	if !ok {
		name := cfg.Name()
		if name == "" {
			name = id
		}
		sc = &scope{nodes: make(map[string]*Entry)}
		sc.root = &Entry{
			ID:           id,
			Presentation: name,
			Kind:         KindConfiguration,
			Timestamp:    ts,
			seq:          d.nextSeq(),
			scope:        sc,
		}
		d.scopes[id] = sc
		d.order = append(d.order, id)
		return sc
	}
	if name := cfg.Name(); name != "" {
		sc.root.Presentation = name
	}
	return sc
}

// upsert returns the entry with the given ID, creating it under parent when
// it does not exist yet. An existing entry keeps its place in the tree.
// It returns nil when the ID is taken by an entry of another kind.
func (d *Data) upsert(sc *scope, id string, kind Kind, ts time.Time, parent string) (*Entry, bool) {
	if e, ok := sc.nodes[id]; ok {
		if e.Kind != kind {
			return nil, false
		}
		return e, false
	}
	e := &Entry{
		ID:           id,
		Presentation: presentation(id),
		Kind:         kind,
		Timestamp:    ts,
		parent:       parent,
		seq:          d.nextSeq(),
		scope:        sc,
	}
	sc.nodes[id] = e
	sc.entry(parent).addChild(id)
	return e, true
}

// adoptOrphans moves tests that were attached to the configuration entry
// because their suite was not known yet.
func (d *Data) adoptOrphans(sc *scope, suite *Entry) {
	var adopted []string
	for _, id := range sc.root.children {
		e := sc.nodes[id]
		if e == nil || e.Kind != KindTest {
			continue
		}
		if suiteID, ok := suiteIDFor(e.ID, d.opts.Separator); ok && suiteID == suite.ID {
			adopted = append(adopted, id)
		}
	}
	for _, id := range adopted {
		e := sc.nodes[id]
		sc.root.removeChild(id)
		suite.addChild(id)
		e.parent = suite.ID
		suite.touch(e.Timestamp)
		if e.Failed {
			suite.Failed = true
		}
	}
}

func (d *Data) nextSeq() int {
	d.seq++
	return d.seq
}

func (sc *scope) entry(id string) *Entry {
	if id == "" {
		return sc.root
	}
	return sc.nodes[id]
}

// touch bumps the timestamp of e and all of its ancestors.
func (sc *scope) touch(e *Entry, ts time.Time) {
	for a := e; a != nil; a = a.Parent() {
		a.touch(ts)
	}
}

// markOutcome stores the outcome of a test and brings the failed flags and
// timestamps of its ancestors up to date. An ancestor stays failed while any
// of its descendants is failing. An outcome older than the one already
// stored is ignored; on equal timestamps the later call wins.
func (sc *scope) markOutcome(test *Entry, outcome Outcome, ts time.Time) {
	if !ts.Before(test.Timestamp) {
		test.Outcome = outcome
		test.Failed = outcome.Failing()
	}
	test.touch(ts)

	for a := test.Parent(); a != nil; a = a.Parent() {
		a.touch(ts)
		if test.Failed {
			a.Failed = true
			continue
		}
		a.Failed = sc.anyChildFailed(a)
	}
}

func (sc *scope) anyChildFailed(e *Entry) bool {
	for _, id := range e.children {
		if child := sc.nodes[id]; child != nil && child.Failed {
			return true
		}
	}
	return false
}
