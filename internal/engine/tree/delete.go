package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

const openPermissions fs.FileMode = 0o777

// DeleteOptions tunes a recursive delete.
type DeleteOptions struct {
	// Filter selects the nodes to delete wholesale. Nil deletes everything below the root.
	Filter domain.PathFilter
	// Observer is ticked once per child processed.
	Observer ports.ActivityObserver
	// Verbose logs every deleted node at INFO.
	Verbose bool
}

// Deleter removes trees best-effort: a failing child never stops its siblings or its parent.
type Deleter struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewDeleter creates a Deleter. logger may be nil.
func NewDeleter(fsys ports.FileSystem, logger ports.Logger) *Deleter {
	return &Deleter{fs: fsys, logger: logger}
}

// DeleteRecursively deletes path and everything below it, or with a filter only the
// accepted nodes and everything below them. Non-matching directories are still searched.
// It reports whether path itself was deleted; a missing path yields false.
// Symbolic links are deleted as links and never followed.
func (d *Deleter) DeleteRecursively(ctx context.Context, path string, opts DeleteOptions) (bool, error) {
	info, err := d.fs.Lstat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.logError(zerr.With(zerr.Wrap(err, "failed to stat path for deletion"), "path", path))
		}
		return false, nil
	}

	root := Node{Path: path, Info: info}
	w := NewWalker(d.fs, opts.Observer)
	if opts.Filter == nil {
		return d.deleteAll(ctx, w, root, opts.Verbose)
	}
	return d.deleteFiltered(ctx, w, root, opts)
}

func (d *Deleter) deleteAll(ctx context.Context, w *Walker, root Node, verbose bool) (bool, error) {
	var rootDeleted bool
	record := func(n Node, ok bool) {
		if n.Depth == 0 {
			rootDeleted = ok
		}
	}

	err := w.Walk(ctx, root, Visitor{
		Enter: func(n Node) (Action, error) {
			switch {
			case isSymlink(n.Info):
				if verbose && d.pointsToDirectory(n.Path) {
					d.logInfo("Deleting symbolic link to a directory '%s'", n.Path)
				}
				record(n, d.Delete(n.Path))
				return SkipChildren, nil
			case n.Info.IsDir():
				d.ensureWritable(n)
				return Continue, nil
			default:
				if verbose {
					d.logInfo("Deleting file '%s'", n.Path)
				}
				record(n, d.Delete(n.Path))
				return Continue, nil
			}
		},
		Leave: func(n Node) error {
			if verbose {
				d.logInfo("Deleting directory '%s'", n.Path)
			}
			record(n, d.Delete(n.Path))
			return nil
		},
		ReadDirFailed: func(n Node, err error) error {
			d.logError(zerr.With(zerr.Wrap(err, "failed to list directory for deletion"), "path", n.Path))
			return nil
		},
	})
	return rootDeleted, err
}

func (d *Deleter) deleteFiltered(ctx context.Context, w *Walker, root Node, opts DeleteOptions) (bool, error) {
	var rootDeleted bool

	err := w.Walk(ctx, root, Visitor{
		Enter: func(n Node) (Action, error) {
			if opts.Filter.Accept(n.Path, n.Kind()) {
				ok, err := d.deleteAll(ctx, NewWalker(d.fs, opts.Observer), Node{Path: n.Path, Info: n.Info}, opts.Verbose)
				if n.Depth == 0 {
					rootDeleted = ok
				}
				return SkipChildren, err
			}
			if isSymlink(n.Info) {
				return SkipChildren, nil
			}
			return Continue, nil
		},
		ReadDirFailed: func(n Node, err error) error {
			d.logError(zerr.With(zerr.Wrap(err, "failed to list directory for deletion"), "path", n.Path))
			return nil
		},
	})
	return rootDeleted, err
}

// Delete removes a single node. When the first attempt fails and the node still exists,
// its permissions are opened up and the removal is retried once.
func (d *Deleter) Delete(path string) bool {
	err := d.fs.Remove(path)
	if err == nil {
		return true
	}

	info, statErr := d.fs.Lstat(path)
	if statErr != nil {
		return false
	}
	if d.fs.SupportsPermissions() && !isSymlink(info) {
		if chmodErr := d.fs.Chmod(path, openPermissions); chmodErr == nil {
			if err = d.fs.Remove(path); err == nil {
				return true
			}
		}
	}

	d.logError(zerr.With(zerr.Wrap(err, "failed to delete"), "path", path))
	return false
}

func (d *Deleter) ensureWritable(n Node) {
	if !d.fs.SupportsPermissions() || d.fs.CanWrite(n.Path) {
		return
	}
	if err := d.fs.Chmod(n.Path, openPermissions); err != nil {
		d.logError(zerr.With(zerr.Wrap(err, "failed to make directory writable"), "path", n.Path))
	}
}

func (d *Deleter) pointsToDirectory(path string) bool {
	info, err := d.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (d *Deleter) logInfo(format string, args ...any) {
	if d.logger != nil {
		d.logger.Info(fmt.Sprintf(format, args...))
	}
}

func (d *Deleter) logError(err error) {
	if d.logger != nil {
		d.logger.Error(err)
	}
}
