// Package watch re-runs a callback whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events an editor emits on save.
const DefaultDelay = 200 * time.Millisecond

// Func handles one change of path.
type Func func(ctx context.Context, path string) error

// Option mutates watcher configuration.
type Option func(*Watcher)

// WithDelay sets the debounce delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher calls a Func for a single file.
type Watcher struct {
	path   string
	fn     Func
	delay  time.Duration
	logger *slog.Logger
}

// New creates a watcher for path.
func New(path string, fn Func, opts ...Option) *Watcher {
	w := &Watcher{
		path:   filepath.Clean(path),
		fn:     fn,
		delay:  DefaultDelay,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run calls the Func once, then again after every debounced write, create
// or rename of the file, until ctx is cancelled. The parent directory is
// watched so that editors which replace the file on save are followed.
// Errors from the Func are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	w.invoke(ctx)

	debounced := debounce.New(w.delay)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			debounced(func() { w.invoke(ctx) })
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) invoke(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.fn(ctx, w.path); err != nil {
		w.logger.Warn("update failed", "path", w.path, "err", err)
		return
	}
	w.logger.Info("updated", "path", w.path, "elapsed", time.Since(start))
}
