package vfs

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher proactively invalidates a Context's page cache when a page's
// backing file changes on disk, supplementing the mtime-comparison reload
// check GetPage performs on every call in debug mode. Hosts that don't
// need sub-request-latency invalidation can skip it entirely and rely on
// the mtime check alone.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	onEvent func(relPath string)
}

// NewWatcher recursively watches root and calls onEvent with the changed
// file's path relative to root, in the virtual file system's rooted form
// (leading "/", forward-slash delimited), whenever a file under it is
// written or removed.
func NewWatcher(root string, onEvent func(relPath string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{watcher: fw, root: root, onEvent: onEvent}
	if err := w.addWatchRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addWatchRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Start runs the watch loop in its own goroutine until Stop is called.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Remove == fsnotify.Remove {
					if rel, err := filepath.Rel(w.root, event.Name); err == nil {
						w.onEvent("/" + filepath.ToSlash(rel))
					}
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

// Stop closes the underlying fsnotify watcher, ending the watch loop.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
