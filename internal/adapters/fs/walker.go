package fs

import (
	"context"
	iofs "io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Finder = (*Walker)(nil)

// Walker searches local directory trees in parallel.
type Walker struct {
	workers int
}

// NewWalker creates a new Walker using the default number of workers.
func NewWalker() *Walker {
	return &Walker{workers: fastwalk.DefaultNumWorkers()}
}

// Find yields every node below root accepted by filter, skipping .git, .jj and ignored names.
// Ignore patterns are doublestar patterns matched against the base name. Results are sorted by path.
func (w *Walker) Find(ctx context.Context, root string, ignores []string, filter domain.PathFilter, observer ports.ActivityObserver) ([]domain.Entry, error) {
	for _, pattern := range ignores {
		if !doublestar.ValidatePattern(pattern) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFilter, "invalid ignore pattern"), "pattern", pattern)
		}
	}

	var (
		mu      sync.Mutex
		entries []domain.Entry
	)

	conf := fastwalk.Config{NumWorkers: w.workers}
	err := fastwalk.Walk(&conf, root, fastwalk.IgnorePermissionErrors(func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.NewCancelled(path, context.Cause(ctx))
		}
		if observer != nil {
			observer.Update()
		}

		if fastwalk.DirEntryDepth(d) == 0 {
			return nil
		}
		if w.ignored(d, ignores) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		kind := domain.KindFile
		if d.IsDir() {
			kind = domain.KindDirectory
		}
		if filter.Accept(path, kind) {
			mu.Lock()
			entries = append(entries, domain.Entry{Path: path, Kind: kind})
			mu.Unlock()
		}
		return nil
	}))
	if err != nil {
		if domain.KindOf(err) == domain.KindCancelled {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", root)
	}

	slices.SortFunc(entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// ignored reports whether a node is skipped: .git and .jj directories and any name matching an ignore pattern.
func (w *Walker) ignored(d iofs.DirEntry, ignores []string) bool {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true
	}

	for _, ignore := range ignores {
		if doublestar.MatchUnvalidated(ignore, name) {
			return true
		}
	}
	return false
}
