package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/engine/tree"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LastChangedRequest configures a youngest-modification search.
type LastChangedRequest struct {
	Paths              []string
	SubdirectoriesOnly bool
	// Threshold stops the search at the first node modified after it. Zero searches everything.
	Threshold time.Time
	// MinAge, when positive, stops the search at the first node younger than MinAge.
	MinAge time.Duration
}

// LastChangedResult is the youngest modification time found below one root.
// It is a lower bound of the true maximum when the search stopped early.
type LastChangedResult struct {
	Path        string
	LastChanged time.Time
}

// LastChanged searches every root concurrently.
func (a *App) LastChanged(ctx context.Context, req LastChangedRequest) (results []LastChangedResult, err error) {
	roots, err := a.resolve(req.Paths)
	if err != nil {
		return nil, err
	}

	ctx, _, complete := a.record(ctx, "lastchanged")
	defer complete(&err)

	results = make([]LastChangedResult, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			session := a.session("lastchanged " + root)
			defer session.Close()

			var (
				t   time.Time
				err error
			)
			if req.MinAge > 0 {
				t, err = session.Ops().LastChangedRelative(gctx, root, req.SubdirectoriesOnly, req.MinAge, session.Observer())
			} else {
				t, err = session.Ops().LastChanged(gctx, root, req.SubdirectoriesOnly, req.Threshold, session.Observer())
			}
			if err != nil {
				return err
			}
			results[i] = LastChangedResult{Path: root, LastChanged: t}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListRequest configures a directory listing.
type ListRequest struct {
	Dir        string
	Recursive  bool
	Select     tree.Select
	Extensions []string
	// Glob restricts the listing to matching nodes; directories are still traversed.
	Glob string
}

// List enumerates Dir through a monitored session.
func (a *App) List(ctx context.Context, req ListRequest) (entries []domain.Entry, err error) {
	filter, err := buildFilter(req.Glob, nil)
	if err != nil {
		return nil, err
	}

	ctx, _, complete := a.record(ctx, "ls "+req.Dir)
	defer complete(&err)

	session := a.session("ls " + req.Dir)
	defer session.Close()
	facade := session.Ops()

	switch req.Select {
	case tree.SelectFiles:
		entries, err = facade.ListFiles(ctx, req.Dir, req.Extensions, req.Recursive, session.Observer())
	case tree.SelectDirectories:
		entries, err = facade.ListDirectories(ctx, req.Dir, filter, req.Recursive, session.Observer())
		filter = nil
	default:
		entries, err = facade.ListFilesAndDirectories(ctx, req.Dir, req.Recursive, session.Observer())
		if len(req.Extensions) > 0 {
			filter = domain.And(filter, domain.Or(domain.Directories(), domain.Extensions(req.Extensions...)))
		}
	}
	if err != nil {
		return nil, err
	}
	return selectEntries(entries, filter), nil
}

func selectEntries(entries []domain.Entry, filter domain.PathFilter) []domain.Entry {
	if filter == nil {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if filter.Accept(e.Path, e.Kind) {
			out = append(out, e)
		}
	}
	return out
}

// FindRequest configures a recursive search.
type FindRequest struct {
	Root string
	Glob string
	// Ignores are base name patterns skipped by the parallel search.
	Ignores []string
	// Parallel uses the multi-worker local walker instead of the monitored traversal.
	Parallel bool
}

// Find collects every node below Root matching Glob.
func (a *App) Find(ctx context.Context, req FindRequest) (entries []domain.Entry, err error) {
	filter, err := buildFilter(req.Glob, nil)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", req.Root)
	}

	ctx, _, complete := a.record(ctx, "find "+root)
	defer complete(&err)

	session := a.session("find " + root)
	defer session.Close()

	if req.Parallel {
		return a.deps.Finder.Find(ctx, root, req.Ignores, filter, session.Observer())
	}
	return session.Ops().Find(ctx, root, filter, session.Observer())
}

// CheckRequest describes a path whose accessibility is verified.
type CheckRequest struct {
	Path      string
	Role      string
	Directory bool
	File      bool
	ReadWrite bool
}

// CheckAccess returns an empty string when the path is usable, otherwise a description of
// the first problem found.
func (a *App) CheckAccess(req CheckRequest) string {
	role := req.Role
	if role == "" {
		role = "Given"
	}
	switch {
	case req.Directory:
		return tree.CheckDirectoryAccessible(a.deps.FileSystem, req.Path, role, req.ReadWrite)
	case req.File:
		return tree.CheckFileAccessible(a.deps.FileSystem, req.Path, role, req.ReadWrite)
	default:
		return tree.CheckPathAccessible(a.deps.FileSystem, req.Path, role, req.ReadWrite)
	}
}

func (a *App) resolve(patterns []string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return a.deps.Resolver.Resolve(patterns, cwd)
}
