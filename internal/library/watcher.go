package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes from editors and sync tools.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads the library file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger
	fs       *fsnotify.Watcher
}

// NewWatcher watches the directory holding path. Editors replace files by
// rename, so the file itself is not watched.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		log:      slog.With("component", "library-watcher"),
		fs:       fs,
	}, nil
}

// Run calls fn with the reloaded library after each settled change until
// ctx is done. Load errors are logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func([]Game)) error {
	defer w.fs.Close()

	name := filepath.Base(w.path)
	var fire <-chan time.Time
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || ev.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			games, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload library failed", "path", w.path, "err", err)
				continue
			}
			w.log.Info("library reloaded", "games", len(games))
			fn(games)
		}
	}
}
