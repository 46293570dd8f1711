package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CatalogWatcher = (*Watcher)(nil)

// DefaultDebounce groups the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a single catalog file.
//
// It watches the parent directory so that editors replacing the file by
// rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange once per debounced
// burst of events on the file.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("Watching catalog %s", w.path)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Catalog %s: %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Catalog watcher error: %v", err)

		case <-timer.C:
			if onChange != nil {
				onChange()
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}
