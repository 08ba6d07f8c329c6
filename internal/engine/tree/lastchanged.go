package tree

import (
	"context"
	"io/fs"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
)

// LastChangedOptions tunes a youngest modification time search.
type LastChangedOptions struct {
	// SubdirectoriesOnly restricts the search below the root to directories.
	SubdirectoriesOnly bool
	// Threshold ends the whole search as soon as a node changed after it. Zero disables early exit.
	Threshold time.Time
	// MinAge ends the whole search as soon as a node changed less than MinAge ago. Zero disables early exit.
	// It is evaluated against the clock at every visited node.
	MinAge time.Duration
	// Observer is ticked once per visited node.
	Observer ports.ActivityObserver
}

// LastChanged returns the most recent modification time of root and the nodes below it.
// Symbolic links are followed: a link contributes its target's time and a linked directory
// is searched. A dangling link makes the time unknown.
// When an early-exit condition is met the search stops everywhere and the running maximum
// is returned; it is then a lower bound of the true maximum.
func LastChanged(ctx context.Context, fsys ports.FileSystem, root string, opts LastChangedOptions) (time.Time, error) {
	s := &lastChangedSearch{opts: opts}

	info, err := fsys.Stat(root)
	if err != nil {
		return time.Time{}, domain.NewUnknownLastChanged(root, err)
	}
	if s.opts.Observer != nil {
		s.opts.Observer.Update()
	}

	v := Visitor{
		Enter: s.enter,
		ReadDirFailed: func(n Node, err error) error {
			return domain.NewUnknownLastChanged(n.Path, err)
		},
		Resolve: func(path string, info fs.FileInfo) (fs.FileInfo, error) {
			target, err := followLinks(fsys)(path, info)
			if err != nil {
				return nil, domain.NewUnknownLastChanged(path, err)
			}
			return target, nil
		},
	}
	if opts.SubdirectoriesOnly {
		v.Include = func(info fs.FileInfo) bool { return info.IsDir() }
	}

	if err := NewWalker(fsys, opts.Observer).Walk(ctx, Node{Path: root, Info: info}, v); err != nil {
		return time.Time{}, err
	}
	return s.max, nil
}

// LastChangedAbsolute searches with an absolute threshold.
func LastChangedAbsolute(ctx context.Context, fsys ports.FileSystem, root string, subdirectoriesOnly bool, threshold time.Time, observer ports.ActivityObserver) (time.Time, error) {
	return LastChanged(ctx, fsys, root, LastChangedOptions{
		SubdirectoriesOnly: subdirectoriesOnly,
		Threshold:          threshold,
		Observer:           observer,
	})
}

// LastChangedRelative searches with a threshold relative to now.
func LastChangedRelative(ctx context.Context, fsys ports.FileSystem, root string, subdirectoriesOnly bool, minAge time.Duration, observer ports.ActivityObserver) (time.Time, error) {
	return LastChanged(ctx, fsys, root, LastChangedOptions{
		SubdirectoriesOnly: subdirectoriesOnly,
		MinAge:             minAge,
		Observer:           observer,
	})
}

type lastChangedSearch struct {
	opts LastChangedOptions
	max  time.Time
}

func (s *lastChangedSearch) enter(n Node) (Action, error) {
	mtime := n.Info.ModTime()
	if mtime.IsZero() || mtime.Unix() == 0 {
		return Stop, domain.NewUnknownLastChanged(n.Path, nil)
	}
	if mtime.After(s.max) {
		s.max = mtime
	}
	if s.youngEnough() {
		return Stop, nil
	}
	return Continue, nil
}

func (s *lastChangedSearch) youngEnough() bool {
	switch {
	case !s.opts.Threshold.IsZero():
		return s.max.After(s.opts.Threshold)
	case s.opts.MinAge > 0:
		return s.max.After(time.Now().Add(-s.opts.MinAge))
	default:
		return false
	}
}
