package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jask/shopgrid/internal/catalog"
)

// Update carries the result of reloading the preferences file.
type Update struct {
	Prefs *catalog.Preferences
	Err   error
}

// Watcher reloads the preferences file when it changes on disk. The parent
// directory is watched so editors that save by rename are picked up.
type Watcher struct {
	mu       sync.Mutex
	path     string
	dir      string
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
	updates  chan Update
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
}

func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		watcher:  fw,
		log:      log,
		debounce: 150 * time.Millisecond,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates delivers reloads. It is closed once the watcher stops.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Start watches in a background goroutine until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir preferences dir: %w", err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	w.log.Debug("watching preferences", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	} else {
		close(w.updates)
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("close preferences watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fire = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("preferences watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			p, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload preferences", zap.Error(err))
			}
			select {
			case w.updates <- Update{Prefs: p, Err: err}:
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}
