// Package ops exposes the tree algorithms and the single-call filesystem primitives
// as one façade, optionally routed through the inactivity supervisor.
package ops

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/tree"
	"go.trai.ch/zerr"
)

const directoryPermissions fs.FileMode = 0o755

// FileOperations is the filesystem façade used by the application layer.
// Every observer argument may be nil.
type FileOperations interface {
	Exists(ctx context.Context, path string) (bool, error)
	DeleteRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) error
	RemoveRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) (bool, error)
	LastChanged(ctx context.Context, root string, subdirectoriesOnly bool, threshold time.Time, observer ports.ActivityObserver) (time.Time, error)
	LastChangedRelative(ctx context.Context, root string, subdirectoriesOnly bool, minAge time.Duration, observer ports.ActivityObserver) (time.Time, error)
	ListFiles(ctx context.Context, dir string, exts []string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error)
	ListDirectories(ctx context.Context, dir string, filter domain.PathFilter, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error)
	ListFilesAndDirectories(ctx context.Context, dir string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error)
	Find(ctx context.Context, root string, filter domain.PathFilter, observer ports.ActivityObserver) ([]domain.Entry, error)
	Rename(ctx context.Context, from, to string) error
	Mkdir(ctx context.Context, path string) error
	Touch(ctx context.Context, path string, mtime time.Time) error
}

var _ FileOperations = (*Operations)(nil)

// Operations runs every call directly on the calling goroutine.
type Operations struct {
	fs      ports.FileSystem
	logger  ports.Logger
	deleter *tree.Deleter
	lister  *tree.Lister
	verbose bool
}

// Option configures Operations.
type Option func(*Operations)

// WithVerboseDelete logs every deleted node.
func WithVerboseDelete(verbose bool) Option {
	return func(o *Operations) {
		o.verbose = verbose
	}
}

// New creates the unmonitored façade. logger may be nil.
func New(fsys ports.FileSystem, logger ports.Logger, opts ...Option) *Operations {
	o := &Operations{
		fs:      fsys,
		logger:  logger,
		deleter: tree.NewDeleter(fsys, logger),
		lister:  tree.NewLister(fsys, logger),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Exists reports whether path exists without following a trailing symbolic link.
func (o *Operations) Exists(_ context.Context, path string) (bool, error) {
	_, err := o.fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
}

// DeleteRecursively is RemoveRecursively that fails when path survived.
func (o *Operations) DeleteRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) error {
	ok, err := o.RemoveRecursively(ctx, path, filter, observer)
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrNotDeleted, "recursive deletion failed"), "path", path)
	}
	return nil
}

// RemoveRecursively deletes path best-effort and reports whether path itself is gone.
func (o *Operations) RemoveRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) (bool, error) {
	return o.deleter.DeleteRecursively(ctx, path, tree.DeleteOptions{
		Filter:   filter,
		Observer: observer,
		Verbose:  o.verbose,
	})
}

// LastChanged returns the youngest modification time below root, stopping early once
// a node younger than threshold is seen. A zero threshold searches the whole tree.
func (o *Operations) LastChanged(ctx context.Context, root string, subdirectoriesOnly bool, threshold time.Time, observer ports.ActivityObserver) (time.Time, error) {
	return tree.LastChangedAbsolute(ctx, o.fs, root, subdirectoriesOnly, threshold, observer)
}

// LastChangedRelative is LastChanged with a threshold of now minus minAge.
func (o *Operations) LastChangedRelative(ctx context.Context, root string, subdirectoriesOnly bool, minAge time.Duration, observer ports.ActivityObserver) (time.Time, error) {
	return tree.LastChangedRelative(ctx, o.fs, root, subdirectoriesOnly, minAge, observer)
}

func (o *Operations) ListFiles(ctx context.Context, dir string, exts []string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return o.lister.ListFiles(ctx, dir, exts, recursive, observer)
}

func (o *Operations) ListDirectories(ctx context.Context, dir string, filter domain.PathFilter, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return o.lister.ListDirectories(ctx, dir, filter, recursive, observer)
}

func (o *Operations) ListFilesAndDirectories(ctx context.Context, dir string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return o.lister.ListFilesAndDirectories(ctx, dir, recursive, observer)
}

// Find collects root and every node below it that filter accepts, in pre-order.
func (o *Operations) Find(ctx context.Context, root string, filter domain.PathFilter, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return tree.FindFiles(ctx, o.fs, root, filter, observer)
}

func (o *Operations) Rename(_ context.Context, from, to string) error {
	if err := o.fs.Rename(from, to); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to rename"), "from", from), "to", to)
	}
	return nil
}

// Mkdir creates path and its missing parents.
func (o *Operations) Mkdir(_ context.Context, path string) error {
	if err := o.fs.MkdirAll(path, directoryPermissions); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// Touch sets the access and modification time of path.
func (o *Operations) Touch(_ context.Context, path string, mtime time.Time) error {
	if err := o.fs.Chtimes(path, mtime, mtime); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set modification time"), "path", path)
	}
	return nil
}
