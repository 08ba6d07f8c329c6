package ops

import (
	"fmt"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/supervisor"
)

// Factory creates sessions sharing one filesystem, logger and supervisor.
type Factory struct {
	fs      ports.FileSystem
	logger  ports.Logger
	sup     *supervisor.Supervisor
	verbose bool
}

// NewFactory creates a Factory. logger may be nil.
func NewFactory(fsys ports.FileSystem, logger ports.Logger, sup *supervisor.Supervisor) *Factory {
	return &Factory{fs: fsys, logger: logger, sup: sup}
}

// SetVerbose makes sessions created afterwards log every deleted node.
func (f *Factory) SetVerbose(verbose bool) {
	f.verbose = verbose
}

// SessionOptions selects how a session runs its calls.
type SessionOptions struct {
	// Unmonitored runs calls directly, without the watchdog.
	Unmonitored bool
	// Timing applies to every supervised call of the session.
	Timing domain.Timing
}

// NewSession starts a unit of work named name.
func (f *Factory) NewSession(name string, opts SessionOptions) *Session {
	var facade FileOperations = New(f.fs, f.logger, WithVerboseDelete(f.verbose))
	if !opts.Unmonitored {
		facade = NewMonitored(facade, f.sup, opts.Timing)
	}
	return &Session{
		name:    name,
		ops:     facade,
		logger:  f.logger,
		started: time.Now(),
	}
}

// Session binds one façade and one visit counter to a unit of work. It replaces any
// implicit per-goroutine façade: callers pass the session explicitly.
type Session struct {
	name    string
	ops     FileOperations
	visits  activity.Counter
	logger  ports.Logger
	started time.Time
}

// Name returns the unit of work's name.
func (s *Session) Name() string {
	return s.name
}

// Ops returns the session's façade.
func (s *Session) Ops() FileOperations {
	return s.ops
}

// Observer returns an observer counting visits for the session and forwarding to extra.
func (s *Session) Observer(extra ...ports.ActivityObserver) ports.ActivityObserver {
	return activity.Fanout(append([]ports.ActivityObserver{&s.visits}, extra...)...)
}

// Visits returns the number of nodes visited through Observer so far.
func (s *Session) Visits() int64 {
	return s.visits.Count()
}

// Close logs a summary of the session.
func (s *Session) Close() {
	if s.logger == nil {
		return
	}
	s.logger.Info(fmt.Sprintf("%s visited %d nodes in %s",
		s.name, s.visits.Count(), time.Since(s.started).Round(time.Millisecond)))
}
