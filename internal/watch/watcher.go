// Package watch follows a directory of event files and rebuilds the recent
// tests aggregate whenever one of them changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AndreyAkinshin/recenttests/internal/events"
)

// DebounceInterval is how long a file must stay quiet before its change is
// reported. A burst of writes yields one callback after the last write.
const DebounceInterval = 50 * time.Millisecond

// Watcher reports changes to event files in a single directory.
type Watcher struct {
	fw      *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fw:     fw,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring dir. onChange is called from a single goroutine with
// the absolute path of each changed event file. Cancelling ctx stops the watcher.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(path string)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(absDir); err != nil {
		return fmt.Errorf("watch %s: %w", absDir, err)
	}
	w.logger.Debug("watching directory", "dir", absDir)

	go w.loop(ctx, onChange)
	return nil
}

// loop delivers debounced changes. pending holds the time of the latest event
// per file; a file is reported once DebounceInterval has passed since then.
func (w *Watcher) loop(ctx context.Context, onChange func(path string)) {
	pending := make(map[string]time.Time)
	timer := time.NewTimer(DebounceInterval)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name
			if !isEventFile(path) {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			w.logger.Debug("event file changed", "path", path, "op", event.Op.String())
			pending[path] = time.Now()
			timer.Reset(DebounceInterval)

		case <-timer.C:
			now := time.Now()
			var next time.Duration
			for path, last := range pending {
				if wait := DebounceInterval - now.Sub(last); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, path)
				onChange(path)
			}
			if next > 0 {
				timer.Reset(next)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			_ = w.Stop()
			return

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// isEventFile reports whether path names a decodable event file.
// Editor swap and hidden files are skipped.
func isEventFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := events.FormatForPath(path)
	return ok
}
