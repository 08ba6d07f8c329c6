package ports

import (
	"context"

	"go.trai.ch/fsguard/internal/core/domain"
)

// Finder searches local trees in parallel.
//
//go:generate mockgen -source=finder.go -destination=mocks/mock_finder.go -package=mocks
type Finder interface {
	// Find returns every node below root accepted by filter, skipping ignored names, sorted by path.
	Find(ctx context.Context, root string, ignores []string, filter domain.PathFilter, observer ActivityObserver) ([]domain.Entry, error)
}

// PathResolver expands path patterns given on the command line.
type PathResolver interface {
	// Resolve expands patterns relative to root into absolute paths, sorted and unique.
	Resolve(patterns []string, root string) ([]string, error)
}
