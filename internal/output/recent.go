package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

// AncestrySeparator joins the enclosing entries of a shown entry.
const AncestrySeparator = " › "

// RecentOptions controls RecentTable rendering.
type RecentOptions struct {
	Ancestry bool
	// Now is the reference time for the AGE column. Zero means time.Now().
	Now time.Time
}

var titleCase = cases.Title(language.English)

// RecentTable renders the selected entries, one row per configuration.
func (w *Writer) RecentTable(entries []*recent.Entry, opts RecentOptions) {
	if len(entries) == 0 {
		w.Info("No test runs recorded.")
		return
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	t := w.newTable()
	header := table.Row{"STATUS", "NAME", "KIND", "AGE"}
	if opts.Ancestry {
		header = append(header, "LOCATION")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "NAME", WidthMax: 120, WidthMaxEnforcer: text.WrapSoft},
		{Name: "AGE", Align: text.AlignRight},
	})

	for _, e := range entries {
		row := table.Row{w.status(e.Failed), label(e), kindLabel(e.Kind), FormatAge(now.Sub(e.Timestamp))}
		if opts.Ancestry {
			row = append(row, Ancestry(e))
		}
		t.AppendRow(row)
	}

	t.Render()
}

// Tree renders every configuration tree with indentation by depth.
func (w *Writer) Tree(d *recent.Data) {
	if len(d.Configurations()) == 0 {
		w.Info("No test runs recorded.")
		return
	}

	t := w.newTable()
	t.AppendHeader(table.Row{"STATUS", "NAME", "KIND", "UPDATED"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "KIND", AutoMerge: true},
	})

	d.Walk(func(e *recent.Entry, depth int) bool {
		t.AppendRow(table.Row{
			w.status(e.Failed),
			strings.Repeat("  ", depth) + label(e),
			kindLabel(e.Kind),
			e.Timestamp.Format(time.RFC3339),
		})
		return true
	})

	t.Render()
}

// EntryJSON is the JSON form of a shown entry.
type EntryJSON struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Failed        bool      `json:"failed"`
	Outcome       string    `json:"outcome,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Configuration string    `json:"configuration"`
	Ancestry      []string  `json:"ancestry"`
}

// JSON writes the selected entries as an indented JSON array.
func (w *Writer) JSON(entries []*recent.Entry) error {
	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		ej := EntryJSON{
			ID:        e.ID,
			Name:      label(e),
			Kind:      e.Kind.String(),
			Failed:    e.Failed,
			Timestamp: e.Timestamp,
			Ancestry:  []string{},
		}
		if e.Kind == recent.KindTest {
			ej.Outcome = e.Outcome.String()
		}
		if root := e.Configuration(); root != nil {
			ej.Configuration = root.ID
		}
		for _, a := range recent.EnclosingConfigurations(e) {
			ej.Ancestry = append(ej.Ancestry, label(a))
		}
		out = append(out, ej)
	}

	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	return nil
}

// Ancestry formats the compressed chain of enclosing entries, nearest first.
func Ancestry(e *recent.Entry) string {
	c := &recent.Collector{}
	e.Accept(c)
	names := make([]string, 0, len(c.EnclosingConfigurations()))
	for _, a := range c.EnclosingConfigurations() {
		names = append(names, label(a))
	}
	return strings.Join(names, AncestrySeparator)
}

// FormatAge formats an elapsed duration in its largest whole unit.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func (w *Writer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	return t
}

func (w *Writer) status(failed bool) string {
	if failed {
		if w.color {
			return text.Colors{text.FgRed, text.Bold}.Sprint("FAIL")
		}
		return "FAIL"
	}
	if w.color {
		return text.FgGreen.Sprint("PASS")
	}
	return "PASS"
}

// label is the presentation of e without terminal escape sequences, which
// some test runners embed in test names.
func label(e *recent.Entry) string {
	return stripansi.Strip(e.Presentation)
}

func kindLabel(k recent.Kind) string {
	return titleCase.String(k.String())
}
