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

// Select restricts the kinds of nodes a listing returns.
type Select int

const (
	// SelectFiles returns non-directories.
	SelectFiles Select = iota
	// SelectDirectories returns directories.
	SelectDirectories
	// SelectBoth returns files and directories.
	SelectBoth
)

func (s Select) allows(kind domain.EntryKind) bool {
	switch s {
	case SelectFiles:
		return kind == domain.KindFile
	case SelectDirectories:
		return kind == domain.KindDirectory
	default:
		return true
	}
}

// ListOptions tunes a listing.
type ListOptions struct {
	Filter    domain.PathFilter
	Select    Select
	Recursive bool
	// Observer is ticked once per listed child, whether it matches or not.
	Observer ports.ActivityObserver
}

// Lister enumerates directories.
type Lister struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewLister creates a Lister. logger may be nil.
func NewLister(fsys ports.FileSystem, logger ports.Logger) *Lister {
	return &Lister{fs: fsys, logger: logger}
}

// List returns the children of dir accepted by the filter, parents before their children.
// When recursive, every subdirectory is searched whether or not the filter accepts it.
// A listing that fails, of dir or of any subdirectory, is an environment failure.
// Symbolic links take the kind of their target and linked directories are searched;
// a dangling link is listed as a file.
func (l *Lister) List(ctx context.Context, dir string, opts ListOptions) ([]domain.Entry, error) {
	info, err := l.fs.Stat(dir)
	if err != nil {
		return nil, l.classify(dir, err)
	}
	if !info.IsDir() {
		return nil, l.classify(dir, nil)
	}

	var result []domain.Entry
	err = NewWalker(l.fs, opts.Observer).Walk(ctx, Node{Path: dir, Info: info}, Visitor{
		Enter: func(n Node) (Action, error) {
			if n.Depth == 0 {
				return Continue, nil
			}
			kind := n.Kind()
			if opts.Select.allows(kind) && opts.Filter.Accept(n.Path, kind) {
				result = append(result, domain.Entry{Path: n.Path, Kind: kind})
			}
			if !opts.Recursive {
				return SkipChildren, nil
			}
			return Continue, nil
		},
		ReadDirFailed: func(n Node, err error) error {
			return l.classify(n.Path, err)
		},
		Resolve: func(path string, info fs.FileInfo) (fs.FileInfo, error) {
			if target, err := followLinks(l.fs)(path, info); err == nil {
				return target, nil
			}
			return info, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListFiles returns the files below dir whose extension is one of exts. No exts lists all files.
func (l *Lister) ListFiles(ctx context.Context, dir string, exts []string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return l.List(ctx, dir, ListOptions{
		Filter:    domain.Extensions(exts...),
		Select:    SelectFiles,
		Recursive: recursive,
		Observer:  observer,
	})
}

// ListDirectories returns the directories below dir accepted by filter.
func (l *Lister) ListDirectories(ctx context.Context, dir string, filter domain.PathFilter, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return l.List(ctx, dir, ListOptions{
		Filter:    filter,
		Select:    SelectDirectories,
		Recursive: recursive,
		Observer:  observer,
	})
}

// ListFilesAndDirectories returns every node below dir.
func (l *Lister) ListFilesAndDirectories(ctx context.Context, dir string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return l.List(ctx, dir, ListOptions{
		Select:    SelectBoth,
		Recursive: recursive,
		Observer:  observer,
	})
}

// classify re-checks a directory whose listing failed and names the reason.
func (l *Lister) classify(dir string, cause error) error {
	info, statErr := l.fs.Stat(dir)
	switch {
	case errors.Is(statErr, fs.ErrNotExist) || (statErr != nil && errors.Is(cause, fs.ErrNotExist)):
		l.logWarn("Failed to get listing of directory '%s' (path not found).", dir)
		return domain.NewEnvironmentFailure(dir, fmt.Sprintf("Path '%s' does not exist.", dir), cause)
	case statErr == nil && !info.IsDir():
		l.logWarn("Failed to get listing of directory '%s' (path is file instead of directory).", dir)
		return domain.NewEnvironmentFailure(dir, fmt.Sprintf("Path '%s' is not a directory.", dir), nil)
	default:
		if cause == nil {
			cause = statErr
		}
		l.logError(zerr.With(zerr.Wrap(cause, "failed to get listing of directory"), "path", dir))
		return domain.NewEnvironmentFailure(dir, fmt.Sprintf("Error listing directory '%s'", dir), cause)
	}
}

func (l *Lister) logWarn(format string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(fmt.Sprintf(format, args...))
	}
}

func (l *Lister) logError(err error) {
	if l.logger != nil {
		l.logger.Error(err)
	}
}
