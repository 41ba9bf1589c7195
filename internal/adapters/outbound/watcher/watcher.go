// Package watcher reports writes to dataset files.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor or exporter
// produces for one save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a set of files and calls OnChange, one call at a time,
// after each settled write.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	files map[string]fileState

	OnChange func(path string)
	OnError  func(err error)
}

type fileState struct {
	modTime time.Time
	size    int64
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fsw,
		debounce: debounce,
		files:    make(map[string]fileState),
	}, nil
}

// Add starts watching path. The parent directory is watched so that files
// replaced by rename are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	w.mu.Lock()
	w.files[abs] = fileState{modTime: info.ModTime(), size: info.Size()}
	w.mu.Unlock()

	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	return nil
}

// Run dispatches change notifications until ctx is cancelled or the
// watcher is closed. Pending debounce timers are dropped on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	changed := make(chan string)
	done := make(chan struct{})
	defer close(done)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.watched(abs) {
				continue
			}
			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			timers[abs] = time.AfterFunc(w.debounce, func() {
				select {
				case changed <- abs:
				case <-ctx.Done():
				case <-done:
				}
			})

		case path := <-changed:
			delete(timers, path)
			if w.refresh(path) && w.OnChange != nil {
				w.OnChange(path)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) watched(abs string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

// refresh records the file's current state and reports whether it differs
// from the last one seen.
func (w *Watcher) refresh(abs string) bool {
	info, err := os.Stat(abs)
	if err != nil {
		if w.OnError != nil {
			w.OnError(err)
		}
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.files[abs]
	if info.ModTime().Equal(prev.modTime) && info.Size() == prev.size {
		return false
	}
	w.files[abs] = fileState{modTime: info.ModTime(), size: info.Size()}
	return true
}
