// Package watcher re-runs analysis when watched source trees change,
// debouncing bursts of filesystem events into one callback.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors source files for changes and fires a debounced
// callback with the accumulated changed paths.
type Watcher interface {
	// Start begins watching, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and cleans up resources.
	Stop() error
}

type watcher struct {
	fs         *fsnotify.Watcher
	extensions map[string]bool // extensions to monitor (.cs, .java, ...)
	debounce   time.Duration

	callback func(files []string)
	ctx      context.Context
	cancel   context.CancelFunc

	accumulated   map[string]bool
	accumulatedMu sync.Mutex

	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher over root (recursively) for the given file
// extensions. A non-positive debounce falls back to 500ms.
func New(root string, extensions []string, debounce time.Duration) (Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[ext] = true
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &watcher{
		fs:          fs,
		extensions:  extMap,
		debounce:    debounce,
		accumulated: make(map[string]bool),
		doneCh:      make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(root); err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching for file changes.
func (w *watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}
	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)
	go w.watch()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.fs.Close()
	})
	return err
}

func (w *watcher) watch() {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			// New directories join the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[event.Name] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(fireCh)

		case <-fireCh:
			w.fireCallback()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// fireCallback drains the accumulated set and invokes the callback.
func (w *watcher) fireCallback() {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	w.callback(files)
}

// resetDebounceTimer restarts the quiet period, stopping and draining
// any timer already running.
func (w *watcher) resetDebounceTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (w *watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent keeps write, create, and remove events on files
// with a monitored extension.
func (w *watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	return w.extensions[filepath.Ext(event.Name)]
}

// addDirectoriesRecursively adds all directories in the tree to the
// watch set. Unreadable subdirectories are logged and skipped.
func (w *watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
