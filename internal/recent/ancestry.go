package recent

// Visitor receives the enclosing entries of a visited entry.
type Visitor interface {
	RecordEnclosing(e *Entry)
}

// Accept hands the compressed chain of enclosing entries to v, innermost first.
func (e *Entry) Accept(v Visitor) {
	for _, a := range EnclosingConfigurations(e) {
		v.RecordEnclosing(a)
	}
}

// Collector is a Visitor that keeps the recorded entries.
type Collector struct {
	enclosing []*Entry
}

// RecordEnclosing appends e to the collected chain.
func (c *Collector) RecordEnclosing(e *Entry) {
	c.enclosing = append(c.enclosing, e)
}

// EnclosingConfigurations returns the entries recorded so far.
func (c *Collector) EnclosingConfigurations() []*Entry {
	return c.enclosing
}

// EnclosingConfigurations returns the ancestors needed to locate e, from the
// nearest one up to the configuration entry.
//
// An ancestor is kept when it is the configuration entry or when its own
// parent has more than one child. Levels with a single child carry no choice
// and are left out.
func EnclosingConfigurations(e *Entry) []*Entry {
	var chain []*Entry
	for a := e.Parent(); a != nil; a = a.Parent() {
		p := a.Parent()
		if p == nil || p.ChildCount() > 1 {
			chain = append(chain, a)
		}
	}
	return chain
}
