package events

import (
	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

// Apply replays events into d in order. names overrides the display name of
// configurations by unique ID and may be nil.
func Apply(d *recent.Data, evs []model.Event, names map[string]string) {
	for _, ev := range evs {
		cfg := ev.Configuration
		if name, ok := names[cfg.ID]; ok {
			cfg.DisplayName = name
		}

		switch ev.Kind {
		case model.EventSuite:
			d.AddSuite(ev.ID, ev.Time, cfg)
		case model.EventTest:
			d.AddTest(ev.ID, recent.ParseOutcome(ev.Outcome), ev.Time, cfg)
		}
	}
}

// Build creates a fresh aggregate from events.
func Build(evs []model.Event, names map[string]string, separator string) *recent.Data {
	d := recent.NewWithOptions(recent.Options{Separator: separator})
	Apply(d, evs, names)
	return d
}
