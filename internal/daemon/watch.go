package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer coalesces bursts of events into one callback after a quiet window.
type debouncer struct {
	window   time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

func newDebouncer(window time.Duration, callback func()) *debouncer {
	return &debouncer{window: window, callback: callback}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}

// dbWatcher fires onChange when the database or its WAL/journal files change.
// It watches the parent directory because SQLite replaces and creates sidecar
// files that a file-level watch would miss.
type dbWatcher struct {
	watcher  *fsnotify.Watcher
	base     string
	debounce time.Duration
	onChange func()
}

func newDBWatcher(dbPath string, debounce time.Duration, onChange func()) (*dbWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(dbPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}
	return &dbWatcher{
		watcher:  w,
		base:     filepath.Base(dbPath),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

func (w *dbWatcher) matches(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.base)
}

// Run blocks until ctx is canceled.
func (w *dbWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	d := newDebouncer(w.debounce, w.onChange)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.matches(event) {
				d.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
