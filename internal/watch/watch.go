// Package watch triggers callbacks when files change on disk, debounced per
// path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config controls what a Watcher reports.
type Config struct {
	// Path is a file or a directory. Files are watched through their parent
	// directory so that atomic replaces (write + rename) are seen.
	Path string

	// DebounceInterval is the quiet period before a callback fires.
	DebounceInterval time.Duration

	// Extensions restricts directory watches to these suffixes. Empty means
	// every file.
	Extensions []string

	// SkipHidden ignores dot-files.
	SkipHidden bool
}

// DefaultConfig returns a config for watching metainfo XML files.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".xml"},
		SkipHidden:       true,
	}
}

// Watcher delivers debounced change notifications.
type Watcher struct {
	fsw      *fsnotify.Watcher
	cfg      Config
	logger   *slog.Logger
	debounce *Debouncer

	// file is set when cfg.Path names a single file.
	file string

	mu      sync.Mutex
	running bool
	closed  bool
}

// New creates a Watcher. The path is not watched until Watch is called.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: path is required")
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultConfig().DebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		cfg:      cfg,
		logger:   logger,
		debounce: NewDebouncer(cfg.DebounceInterval),
	}, nil
}

// Watch blocks until ctx is done or Stop is called, invoking onChange with the
// path of every changed file after its debounce interval. Callback errors are
// logged and do not stop the watcher.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watch: already running")
	}
	if w.closed {
		w.mu.Unlock()
		return errors.New("watch: stopped")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if err := w.add(); err != nil {
		return err
	}
	w.logger.Info("watching for changes",
		"path", w.cfg.Path,
		"debounce_ms", w.cfg.DebounceInterval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			name := ev.Name
			w.debounce.Trigger(name, func() {
				if err := onChange(name); err != nil {
					w.logger.Error("change handler failed", "path", name, "error", err)
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Stop cancels pending callbacks and releases the underlying watcher. It is
// safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.debounce.Stop()
	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("close fsnotify watcher: %w", err)
	}
	return nil
}

func (w *Watcher) add() error {
	info, err := os.Stat(w.cfg.Path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(w.cfg.Path)
		if err != nil {
			return err
		}
		w.file = abs
		return w.fsw.Add(filepath.Dir(abs))
	}
	return filepath.WalkDir(w.cfg.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.cfg.SkipHidden && path != w.cfg.Path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch directory %q: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if w.file != "" {
		abs, err := filepath.Abs(ev.Name)
		return err == nil && abs == w.file
	}
	base := filepath.Base(ev.Name)
	if w.cfg.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range w.cfg.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Debouncer collapses bursts of events per key into one callback fired after
// a quiet period.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval, timers: map[string]*time.Timer{}}
}

// Trigger (re)starts the timer for key. Only the last callback registered
// within the interval runs.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels every pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
}
