package cli

import (
	stderrors "errors"
	"os"
	"time"

	"github.com/AndreyAkinshin/recenttests/internal/errors"
	"github.com/AndreyAkinshin/recenttests/internal/events"
	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/project"
	"github.com/AndreyAkinshin/recenttests/internal/store"
)

// openJournal opens the workspace journal, creating it if needed.
func (a *app) openJournal(proj *project.Project) (*store.Store, error) {
	s, err := store.Open(proj.JournalPath(), a.logger)
	if stderrors.Is(err, store.ErrLocked) {
		return nil, errors.Environmentf("cannot open journal %s: %v", proj.JournalPath(), err)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot open journal")
	}
	s.SetClock(a.now)
	return s, nil
}

// journalEvents returns the journaled events, or none when the workspace has
// no journal yet. Reading never creates a journal.
func (a *app) journalEvents(proj *project.Project) ([]model.Event, error) {
	if _, err := os.Stat(proj.JournalPath()); os.IsNotExist(err) {
		a.logger.Debug("no journal yet", "path", proj.JournalPath())
		return nil, nil
	}

	s, err := a.openJournal(proj)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	evs, err := s.Events(time.Time{})
	if err != nil {
		return nil, errors.Wrap(err, "cannot read journal")
	}
	return evs, nil
}

// decodeFiles decodes event files in order, warning about skipped events.
func (a *app) decodeFiles(files []string) ([]model.Event, error) {
	var evs []model.Event
	for _, path := range files {
		res, err := a.decodeFile(path)
		if err != nil {
			return nil, err
		}
		evs = append(evs, res.Events...)
	}
	return evs, nil
}

func (a *app) decodeFile(path string) (*events.Result, error) {
	res, err := events.DecodeFile(path)
	if stderrors.Is(err, events.ErrUnknownFormat) {
		return nil, errors.Configf("%s: unsupported event file (use .jsonl, .ndjson, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read events")
	}

	for _, skipped := range res.Skipped {
		a.logger.Debug("skipped event", "path", path, "line", skipped.Line, "error", skipped.Err)
	}
	if n := len(res.Skipped); n > 0 {
		a.out.Warning("%s: skipped %s", path, plural(n, "invalid event"))
	}
	return res, nil
}

// collectEvents gathers journal events followed by events from files.
func (a *app) collectEvents(proj *project.Project, files []string, useJournal bool) ([]model.Event, error) {
	var evs []model.Event
	if useJournal {
		journal, err := a.journalEvents(proj)
		if err != nil {
			return nil, err
		}
		evs = append(evs, journal...)
	}

	fromFiles, err := a.decodeFiles(files)
	if err != nil {
		return nil, err
	}
	return append(evs, fromFiles...), nil
}
