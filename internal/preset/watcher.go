package preset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/logging"
)

// Event reports one reload attempt. On failure Err is set and the store
// keeps its previous values.
type Event struct {
	Preset Preset
	Err    error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadHook registers fn, called after every reload attempt.
func WithReloadHook(fn func(err error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithOverrides registers fn, applied to every reloaded preset before it
// reaches the store. Command line overrides use it to survive reloads.
func WithOverrides(fn func(eq.ChainSettings) eq.ChainSettings) WatcherOption {
	return func(w *Watcher) {
		w.override = fn
	}
}

// Watcher reloads a preset file into a parameter store whenever it changes.
// It watches the parent directory so editors that replace the file by rename
// are picked up too.
type Watcher struct {
	path     string
	store    *eq.ParameterStore
	logger   *slog.Logger
	events   chan Event
	onReload func(error)
	override func(eq.ChainSettings) eq.ChainSettings
}

// NewWatcher returns a watcher for path. Call Run to start it.
func NewWatcher(path string, store *eq.ParameterStore, logger *slog.Logger, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("preset: watch %q: %w", path, err)
	}

	w := &Watcher{
		path:   abs,
		store:  store,
		logger: logging.Module(logger, "preset"),
		events: make(chan Event, 8),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Events delivers reload results. Results are dropped when nobody reads.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run blocks until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: new watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", w.path, err)
	}

	w.logger.Info("watching preset", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !isChange(ev) {
				continue
			}
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err == nil {
		var cs eq.ChainSettings
		if cs, err = p.Settings(); err == nil {
			if w.override != nil {
				cs = w.override(cs)
			}
			w.store.SetSettings(cs)
		}
	}

	if err != nil {
		w.logger.Warn("preset reload failed, keeping previous settings", "error", err)
	} else {
		w.logger.Info("preset reloaded", "name", p.Name)
	}

	if w.onReload != nil {
		w.onReload(err)
	}

	select {
	case w.events <- Event{Preset: p, Err: err}:
	default:
		w.logger.Debug("event channel full, discard event")
	}
}

func isChange(ev fsnotify.Event) bool {
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
