package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DeleteRequest selects what to delete.
type DeleteRequest struct {
	// Paths are the roots to delete; glob patterns are expanded.
	Paths []string
	// Filter restricts the deletion to matching nodes and everything below them.
	// Doublestar syntax; a pattern without a slash matches base names.
	Filter string
	// Extensions restricts the deletion to files with one of these extensions.
	Extensions []string
}

// DeleteOutcome is the result for one root.
type DeleteOutcome struct {
	Path    string
	Deleted bool
	Visited int64
}

// Delete deletes every requested root concurrently. Roots must not overlap.
// A root that survives is reported in its outcome and makes Delete return ErrNotDeleted
// unless a filter was given, in which case the root is expected to remain.
func (a *App) Delete(ctx context.Context, req DeleteRequest) (outcomes []DeleteOutcome, err error) {
	filter, err := buildFilter(req.Filter, req.Extensions)
	if err != nil {
		return nil, err
	}

	roots, err := a.resolve(req.Paths)
	if err != nil {
		return nil, err
	}
	if err := checkDisjoint(roots); err != nil {
		return nil, err
	}

	ctx, _, complete := a.record(ctx, "rm "+strings.Join(roots, " "))
	defer complete(&err)

	outcomes = make([]DeleteOutcome, len(roots))
	var (
		mu       sync.Mutex
		survived []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			session := a.session("rm " + root)
			defer session.Close()

			deleted, err := session.Ops().RemoveRecursively(gctx, root, filter, session.Observer())
			outcomes[i] = DeleteOutcome{Path: root, Deleted: deleted, Visited: session.Visits()}
			if err != nil {
				return err
			}
			if !deleted && filter == nil {
				mu.Lock()
				survived = append(survived, root)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	if len(survived) > 0 {
		err := zerr.Wrap(domain.ErrNotDeleted, fmt.Sprintf("recursive deletion of '%s' failed", strings.Join(survived, "', '")))
		return outcomes, zerr.With(err, "paths", len(survived))
	}
	return outcomes, nil
}

// checkDisjoint rejects roots where one contains another.
func checkDisjoint(roots []string) error {
	for i, a := range roots {
		for _, b := range roots[i+1:] {
			if domain.Overlap(a, b) {
				err := zerr.Wrap(domain.ErrOverlappingPaths, "cannot delete nested paths concurrently")
				return zerr.With(zerr.With(err, "first", a), "second", b)
			}
		}
	}
	return nil
}

// buildFilter combines a glob and an extension list. Both empty yields nil.
func buildFilter(glob string, exts []string) (domain.PathFilter, error) {
	var filters []domain.PathFilter
	if glob != "" {
		f, err := domain.Glob(glob)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if len(exts) > 0 {
		filters = append(filters, domain.Files().And(domain.Extensions(exts...)))
	}
	if len(filters) == 0 {
		return nil, nil
	}
	return domain.And(filters...), nil
}
