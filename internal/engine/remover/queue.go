// Package remover deletes queued paths in the background, persisting the queue
// so pending removals survive a restart.
package remover

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/ops"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Queue is a journal-backed removal queue.
type Queue struct {
	journal ports.RemovalJournal
	ops     ops.FileOperations
	logger  ports.Logger
	workers int

	mu sync.Mutex
	// abandoned holds paths whose removal hung. The watchdog does not wait for the hung
	// worker, so these are not touched again by this queue.
	abandoned map[string]struct{}
}

// NewQueue creates a Queue draining with the given number of concurrent workers.
func NewQueue(journal ports.RemovalJournal, facade ops.FileOperations, logger ports.Logger, workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		journal:   journal,
		ops:       facade,
		logger:    logger,
		workers:   workers,
		abandoned: make(map[string]struct{}),
	}
}

// Enqueue records path for removal and returns without deleting anything.
func (q *Queue) Enqueue(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
	}
	if err := q.journal.Add(abs); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to queue path for removal"), "path", abs)
	}
	return nil
}

// Pending returns the queued paths with their status.
func (q *Queue) Pending() map[string]domain.RemovalStatus {
	return q.journal.Entries()
}

// Drain deletes every pending path. A path leaves the journal once it no longer exists.
// Pending paths below another pending path are handled after it by the same worker, so no
// two workers walk the same subtree. Paths whose removal hung earlier in this queue's life,
// and paths overlapping them, are left for a later queue.
// Paths that survive stay queued and Drain returns ErrRemovalIncomplete.
func (q *Queue) Drain(ctx context.Context) error {
	groups := plan(q.journal.Pending())
	if len(groups) == 0 {
		return nil
	}

	var (
		mu        sync.Mutex
		remaining int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.workers)
	for _, group := range groups {
		g.Go(func() error {
			for _, path := range group {
				if err := gctx.Err(); err != nil {
					return domain.NewCancelled(path, context.Cause(gctx))
				}
				if !q.settle(gctx, path) {
					mu.Lock()
					remaining++
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if remaining > 0 {
		err := zerr.Wrap(domain.ErrRemovalIncomplete, "paths left in removal journal")
		return zerr.With(err, "remaining", remaining)
	}
	return nil
}

// plan splits pending paths into groups headed by a path without a pending ancestor,
// followed by its pending descendants in order.
func plan(pending []string) [][]string {
	sorted := slices.Clone(pending)
	slices.Sort(sorted)

	var groups [][]string
next:
	for _, path := range sorted {
		for i, group := range groups {
			if domain.Contains(group[0], path) {
				groups[i] = append(group, path)
				continue next
			}
		}
		groups = append(groups, []string{path})
	}
	return groups
}

// settle removes path unless it overlaps an abandoned removal, reporting whether it is gone.
func (q *Queue) settle(ctx context.Context, path string) bool {
	if abandoned, ok := q.overlapsAbandoned(path); ok {
		q.logInfo("Skipping queued path '%s': removal of '%s' hung and may still be running", path, abandoned)
		return false
	}
	return q.remove(ctx, path)
}

func (q *Queue) overlapsAbandoned(path string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for abandoned := range q.abandoned {
		if domain.Overlap(abandoned, path) {
			return abandoned, true
		}
	}
	return "", false
}

// Run drains the queue every interval until ctx is done.
func (q *Queue) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := q.Drain(ctx); err != nil && !errors.Is(err, domain.ErrRemovalIncomplete) {
			q.logError(err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// remove deletes one path and reports whether it is gone.
func (q *Queue) remove(ctx context.Context, path string) bool {
	q.setStatus(path, domain.RemovalRunning)

	_, err := q.ops.RemoveRecursively(ctx, path, nil, nil)
	if err != nil {
		q.logError(err)
	}

	exists, statErr := q.ops.Exists(ctx, path)
	if statErr == nil && !exists {
		if rmErr := q.journal.Remove(path); rmErr != nil {
			q.logError(rmErr)
		}
		q.logInfo("Removed queued path '%s'", path)
		return true
	}

	status := domain.RemovalFailed
	if domain.KindOf(err) == domain.KindHang || domain.KindOf(statErr) == domain.KindHang {
		status = domain.RemovalHung
		q.mu.Lock()
		q.abandoned[path] = struct{}{}
		q.mu.Unlock()
	}
	q.setStatus(path, status)
	return false
}

func (q *Queue) setStatus(path string, status domain.RemovalStatus) {
	if err := q.journal.SetStatus(path, status); err != nil {
		q.logError(err)
	}
}

func (q *Queue) logInfo(format string, args ...any) {
	if q.logger != nil {
		q.logger.Info(fmt.Sprintf(format, args...))
	}
}

func (q *Queue) logError(err error) {
	if q.logger != nil {
		q.logger.Error(err)
	}
}
