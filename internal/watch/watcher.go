// Package watch triggers rescans when a watched folder tree changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period after the last filesystem event before a
// rescan fires. Document saves often arrive as bursts of writes.
const debounce = 1500 * time.Millisecond

// Watcher monitors a folder tree and invokes a callback after changes settle.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	onChange func()
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over root. onChange runs on the watcher goroutine
// after each debounced burst of events.
func New(root string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{root: root, fsw: fsw, onChange: onChange}, nil
}

// Start registers the tree's directories and begins watching.
func (w *Watcher) Start(ctx context.Context) error {
	watched := 0
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("cannot watch directory", "path", path, "error", err)
			return nil
		}
		watched++
		return nil
	})
	if err != nil {
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.loop(ctx)

	slog.Info("watching for changes", "root", w.root, "directories", watched)
	return nil
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.fsw.Close()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New directories must be registered to see events inside them.
			if event.Op.Has(fsnotify.Create) {
				w.addIfDir(event.Name)
			}
			w.bump()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) addIfDir(path string) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("cannot watch new directory", "path", path, "error", err)
		}
	}
}

// bump resets the debounce timer; onChange fires once events go quiet.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, w.onChange)
}
