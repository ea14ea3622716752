package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/AndreyAkinshin/recenttests/internal/events"
	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

// RenderFunc receives every rebuilt aggregate along with the events it was built from.
type RenderFunc func(d *recent.Data, evs []model.Event)

// RebuilderOptions configures a Rebuilder.
type RebuilderOptions struct {
	Separator string
	Names     map[string]string
	// Base events are replayed before the directory's files, e.g. the journal.
	Base   []model.Event
	Logger *slog.Logger
}

// Rebuilder reloads every event file in a directory into a fresh aggregate.
// Rebuilds run one at a time on the goroutine calling Run; triggers that
// arrive during a rebuild are coalesced into one follow-up rebuild.
type Rebuilder struct {
	dir     string
	opts    RebuilderOptions
	render  RenderFunc
	trigger chan struct{}
}

// NewRebuilder creates a Rebuilder for dir.
func NewRebuilder(dir string, opts RebuilderOptions, render RenderFunc) *Rebuilder {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Rebuilder{
		dir:     dir,
		opts:    opts,
		render:  render,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a rebuild without blocking.
func (r *Rebuilder) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// OnChange adapts Trigger to a Watcher callback.
func (r *Rebuilder) OnChange(string) {
	r.Trigger()
}

// Run rebuilds once immediately and then after every trigger until ctx is done.
func (r *Rebuilder) Run(ctx context.Context) error {
	if err := r.rebuildAndRender(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.trigger:
			if err := r.rebuildAndRender(); err != nil {
				r.opts.Logger.Warn("rebuild failed", "error", err)
			}
		}
	}
}

func (r *Rebuilder) rebuildAndRender() error {
	d, evs, err := r.Rebuild()
	if err != nil {
		return err
	}
	if r.render != nil {
		r.render(d, evs)
	}
	return nil
}

// Rebuild decodes all event files in name order and replays them after the
// base events. Files that fail to decode are logged and skipped.
func (r *Rebuilder) Rebuild() (*recent.Data, []model.Event, error) {
	files, err := EventFiles(r.dir)
	if err != nil {
		return nil, nil, err
	}

	evs := append([]model.Event(nil), r.opts.Base...)
	for _, path := range files {
		res, err := events.DecodeFile(path)
		if err != nil {
			r.opts.Logger.Warn("skipping event file", "path", path, "error", err)
			continue
		}
		for _, skipped := range res.Skipped {
			r.opts.Logger.Debug("skipped event", "path", path, "line", skipped.Line, "error", skipped.Err)
		}
		evs = append(evs, res.Events...)
	}

	d := events.Build(evs, r.opts.Names, r.opts.Separator)
	r.opts.Logger.Debug("rebuilt", "files", len(files), "events", len(evs))
	return d, evs, nil
}

// EventFiles lists the event files directly inside dir, sorted by name.
func EventFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read event directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if isEventFile(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}
