package watcher

import (
	"context"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ChangeWatcher = (*AutoWatcher)(nil)

// AutoWatcher runs notifications and polling side by side so that local changes are
// seen immediately and remote ones at the next poll.
type AutoWatcher struct {
	notify *NotifyWatcher
	poll   *PollingWatcher
	logger ports.Logger
}

// NewAutoWatcher combines n and p. logger may be nil.
func NewAutoWatcher(n *NotifyWatcher, p *PollingWatcher, logger ports.Logger) *AutoWatcher {
	return &AutoWatcher{notify: n, poll: p, logger: logger}
}

// Watch blocks until ctx is done. A notification setup failure only disables notifications.
func (w *AutoWatcher) Watch(ctx context.Context, root string, observer ports.ActivityObserver) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := w.notify.Watch(gctx, root, observer); err != nil && w.logger != nil {
			w.logger.Warn("file notifications unavailable, polling only: " + err.Error())
		}
		return nil
	})
	g.Go(func() error {
		return w.poll.Watch(gctx, root, observer)
	})
	return g.Wait()
}

// NewFactory returns a ports.WatcherFactory building watchers over fingerprinter.
func NewFactory(fingerprinter ports.Fingerprinter, logger ports.Logger) ports.WatcherFactory {
	return func(mode domain.WatchMode, interval time.Duration) (ports.ChangeWatcher, error) {
		switch mode {
		case domain.WatchNotify:
			return NewNotifyWatcher(logger), nil
		case domain.WatchPoll:
			return NewPollingWatcher(fingerprinter, interval), nil
		case domain.WatchAuto, "":
			return NewAutoWatcher(NewNotifyWatcher(logger), NewPollingWatcher(fingerprinter, interval), logger), nil
		default:
			return nil, zerr.With(zerr.New("unknown watch mode"), "mode", string(mode))
		}
	}
}
