package watcher

import (
	"context"
	"time"

	"go.trai.ch/fsguard/internal/core/ports"
)

var _ ports.ChangeWatcher = (*PollingWatcher)(nil)

// PollingWatcher fingerprints a tree periodically and ticks whenever the fingerprint
// changes. It works on any filesystem at the cost of one metadata walk per interval.
type PollingWatcher struct {
	fingerprinter ports.Fingerprinter
	interval      time.Duration
}

// NewPollingWatcher creates a PollingWatcher.
func NewPollingWatcher(fingerprinter ports.Fingerprinter, interval time.Duration) *PollingWatcher {
	return &PollingWatcher{fingerprinter: fingerprinter, interval: interval}
}

// Watch blocks until ctx is done. A tree that cannot be fingerprinted, for instance
// because it does not exist yet, counts as an empty fingerprint.
func (w *PollingWatcher) Watch(ctx context.Context, root string, observer ports.ActivityObserver) error {
	last := w.fingerprint(root)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := w.fingerprint(root)
			if current != last {
				last = current
				if observer != nil {
					observer.Update()
				}
			}
		}
	}
}

func (w *PollingWatcher) fingerprint(root string) uint64 {
	fp, err := w.fingerprinter.Fingerprint(root)
	if err != nil {
		return 0
	}
	return fp
}
