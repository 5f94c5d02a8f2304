package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file when it changes and delivers each valid
// result on Updates. Invalid edits are logged and skipped so a typo never
// stops a running match.
type Watcher struct {
	mu       sync.Mutex
	path     string
	log      *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan *Config
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	adjust   func(*Config)

	pending   bool
	lastEvent time.Time
}

// NewWatcher prepares a watcher for path. Nothing is watched until Start.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		log:      log.Named("config"),
		watcher:  fw,
		debounce: 200 * time.Millisecond, // editors write in bursts
		updates:  make(chan *Config, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Adjust sets a function applied to every reloaded config before it is
// validated, so overrides from the command line survive edits to the file.
// Call it before Start.
func (w *Watcher) Adjust(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.adjust = fn
}

// Updates delivers freshly loaded configs. Only the newest one is kept if
// the reader falls behind. The channel is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Start watches the file's directory, so atomic saves (write temp + rename)
// are seen too. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.running = true
	w.log.Info("watching config", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Warn("closing config watcher", zap.Error(err))
		}
	}()

	tick := time.NewTicker(w.debounce / 4)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("config changed", zap.String("op", ev.Op.String()))
			w.pending = true
			w.lastEvent = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))

		case <-tick.C:
			if w.pending && time.Since(w.lastEvent) >= w.debounce {
				w.pending = false
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadWith(w.path, w.adjust)
	if err != nil {
		w.log.Warn("ignoring config change", zap.Error(err))
		return
	}
	// Drop a stale unread update in favour of this one.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Info("config reloaded", zap.String("path", w.path))
}
