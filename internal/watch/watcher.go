// Package watch re-runs a callback whenever a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/logging"
)

// DefaultDebounce collapses editor save bursts into one callback.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a single file through its directory, so editors that
// replace the file on save are still followed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for path. Call Run to start it.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsWatcher,
		path:     abs,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period before the callback fires.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange after each burst of writes
// to the file. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(w.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Debug("file changed", zap.String("path", w.path), zap.String("op", event.Op.String()))
			w.schedule(func() { onChange(w.path) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) schedule(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, fn)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
