package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before onChange runs.
const DefaultDebounce = 100 * time.Millisecond

var (
	// ErrIsDirectory is returned when the watched path is a directory.
	ErrIsDirectory = errors.New("watched path is a directory")
	// ErrClosed is returned when fsnotify closes its channels unexpectedly.
	ErrClosed = errors.New("watcher channels closed")
)

// Config configures a Watcher.
type Config struct {
	// Path is the file to watch.
	Path string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
}

// Watcher calls back when one file changes. The parent directory is watched
// so that editors replacing the file by rename are noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New validates cfg and returns a Watcher. A nil logger uses slog.Default.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", cfg.Path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", abs, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{path: abs, debounce: debounce, logger: logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Watch blocks until ctx is done, calling onChange after each burst of
// writes, creates or renames of the file. Errors from onChange are logged
// and do not stop the watch. Calls to onChange never overlap.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	defer func() { _ = fsw.Close() }()

	err = fsw.Add(filepath.Dir(w.path))
	if err != nil {
		return fmt.Errorf("watching %q: %w", filepath.Dir(w.path), err)
	}

	w.logger.Info("watching file", slog.String("path", w.path), slog.Duration("debounce", w.debounce))

	deb := newDebouncer(w.debounce, func() {
		err := onChange()
		if err != nil {
			w.logger.Error("change handler failed", slog.String("path", w.path), slog.Any("error", err))
		}
	})
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watch stopped", slog.String("path", w.path))

			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return ErrClosed
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("file event", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			deb.trigger()

		case err, ok := <-fsw.Errors:
			if !ok {
				return ErrClosed
			}

			w.logger.Error("file watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// debouncer runs fn once the trigger calls have been quiet for interval.
type debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.Mutex
}

func newDebouncer(interval time.Duration, fn func()) *debouncer {
	return &debouncer{interval: interval, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()

	if stopped {
		return
	}

	d.running.Lock()
	defer d.running.Unlock()

	d.fn()
}

// stop cancels a pending call and waits for a running one.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}
