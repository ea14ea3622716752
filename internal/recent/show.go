package recent

import "time"

// TestsToShow returns one entry per configuration, in the order the
// configurations were first seen.
//
// A configuration without failing tests is represented by its configuration
// entry. Otherwise the most recently failed test stands for it; when several
// tests failed at the same time the one recorded first wins.
func (d *Data) TestsToShow() []*Entry {
	return d.TestsToShowSince(time.Time{})
}

// TestsToShowSince is like TestsToShow but leaves out configurations that
// were last touched before cutoff. A zero cutoff keeps everything.
func (d *Data) TestsToShowSince(cutoff time.Time) []*Entry {
	entries := make([]*Entry, 0, len(d.order))
	for _, id := range d.order {
		sc := d.scopes[id]
		if !cutoff.IsZero() && sc.root.Timestamp.Before(cutoff) {
			continue
		}
		entries = append(entries, sc.representative())
	}
	return entries
}

func (sc *scope) representative() *Entry {
	if !sc.root.Failed {
		return sc.root
	}

	var best *Entry
	for _, e := range sc.nodes {
		if e.Kind != KindTest || !e.Failed {
			continue
		}
		if best == nil || e.Timestamp.After(best.Timestamp) ||
			(e.Timestamp.Equal(best.Timestamp) && e.seq < best.seq) {
			best = e
		}
	}

	if best == nil {
		return sc.root
	}
	return best
}
