// Package watcher flags the index as stale when local document
// directories change while serving. Re-ingestion stays an explicit
// administrative action; the flag only surfaces the drift.
package watcher

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// Watcher observes document directories for changes.
type Watcher struct {
	fs    *fsnotify.Watcher
	stale atomic.Bool
}

// New creates a watcher over the given directories. Directories that do
// not exist are skipped; there is nothing to watch until they appear.
func New(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fs: fs}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			logger.Debug("Not watching %s: %v", dir, err)
			continue
		}
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, err
		}
		logger.Debug("Watching %s for document changes", dir)
	}

	return w, nil
}

// Start consumes events until the context is cancelled. Any create,
// write, remove or rename marks the index stale.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer w.fs.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					if w.stale.CompareAndSwap(false, true) {
						logger.Warn("Local documents changed (%s); index is stale until the next ingestion run", event.Name)
					}
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()
}

// Stale reports whether documents changed since the index was built.
func (w *Watcher) Stale() bool {
	return w.stale.Load()
}
