// Package watcher turns changes below a directory into activity ticks.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeWatcher = (*NotifyWatcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git": true,
	".jj":  true,
}

// NotifyWatcher watches a tree with fsnotify. It sees nothing on network filesystems
// where the kernel receives no change notifications.
type NotifyWatcher struct {
	logger ports.Logger
}

// NewNotifyWatcher creates a NotifyWatcher. logger may be nil.
func NewNotifyWatcher(logger ports.Logger) *NotifyWatcher {
	return &NotifyWatcher{logger: logger}
}

// Watch adds root and every directory below it to a new fsnotify watcher and ticks
// observer once per event until ctx is done. Directories created later are added too.
func (w *NotifyWatcher) Watch(ctx context.Context, root string, observer ports.ActivityObserver) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsWatcher.Close() }()

	for dir := range watchRecursively(root) {
		if err := fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if observer != nil {
				observer.Update()
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !shouldSkip(info.Name()) {
					for dir := range watchRecursively(event.Name) {
						_ = fsWatcher.Add(dir)
					}
				}
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) && observer != nil {
				// Lost events are still activity.
				observer.Update()
			}
			if w.logger != nil {
				w.logger.Warn("file watcher error: " + err.Error())
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // skip problematic directories
			}
			if d.IsDir() {
				if path != root && shouldSkip(d.Name()) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

func shouldSkip(name string) bool {
	return shouldSkipDirectories[name]
}
