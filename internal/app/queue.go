package app

import (
	"context"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/engine/remover"
	"go.trai.ch/zerr"
)

// queue opens the configured removal journal and binds it to a fresh session.
func (a *App) queue(name string) (*remover.Queue, func(), error) {
	if a.deps.OpenJournal == nil {
		return nil, nil, zerr.New("removal journal is not configured")
	}
	path := a.config.Removal.Journal
	journal, err := a.deps.OpenJournal(path)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to open removal journal"), "path", path)
	}
	session := a.session(name)
	q := remover.NewQueue(journal, session.Ops(), a.deps.Logger, a.config.Removal.Workers)
	return q, session.Close, nil
}

// Enqueue records paths for deferred removal.
func (a *App) Enqueue(paths []string) error {
	q, done, err := a.queue("queue add")
	if err != nil {
		return err
	}
	defer done()
	for _, path := range paths {
		if err := q.Enqueue(path); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns every path in the removal journal with its status.
func (a *App) Pending() (map[string]domain.RemovalStatus, error) {
	q, done, err := a.queue("queue list")
	if err != nil {
		return nil, err
	}
	defer done()
	return q.Pending(), nil
}

// Drain deletes every queued path once.
func (a *App) Drain(ctx context.Context) (err error) {
	q, done, err := a.queue("queue drain")
	if err != nil {
		return err
	}
	defer done()

	ctx, _, complete := a.record(ctx, "queue drain")
	defer complete(&err)
	return q.Drain(ctx)
}

// RunQueue drains the queue at the configured interval until ctx is done.
func (a *App) RunQueue(ctx context.Context) error {
	q, done, err := a.queue("queue run")
	if err != nil {
		return err
	}
	defer done()
	a.logInfo("Draining removal journal " + a.config.Removal.Journal + " every " + a.config.Removal.Interval.String())
	return q.Run(ctx, a.config.Removal.Interval)
}
