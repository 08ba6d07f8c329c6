package ports

import (
	"context"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
)

// ChangeWatcher reports changes below a directory as activity.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type ChangeWatcher interface {
	// Watch ticks observer for every change below root until ctx is done.
	Watch(ctx context.Context, root string, observer ActivityObserver) error
}

// Fingerprinter summarises the shape of a directory tree.
type Fingerprinter interface {
	// Fingerprint hashes names, sizes and modification times below root.
	Fingerprint(root string) (uint64, error)
}

// WatcherFactory creates the ChangeWatcher for a configured mode. interval is the
// fingerprint period used by polling modes.
type WatcherFactory func(mode domain.WatchMode, interval time.Duration) (ChangeWatcher, error)
