package domain

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultPollInterval is how often a supervisor samples its sensor.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultMaxInactivity is the inactivity budget before an operation is declared hung.
	DefaultMaxInactivity = 30 * time.Second
)

// TimingParameters configures the watchdog of a supervised operation.
// Instances are shared by pointer and may be mutated while in use; supervisors
// re-read them on every poll.
type TimingParameters struct {
	mu            sync.RWMutex
	pollInterval  time.Duration
	maxInactivity time.Duration
	escalation    []time.Duration
}

// NewTimingParameters validates and creates timing parameters. Escalation steps are
// inactivity durations at which a warning is logged before the operation is declared hung.
func NewTimingParameters(pollInterval, maxInactivity time.Duration, escalation ...time.Duration) (*TimingParameters, error) {
	if err := validateTiming(pollInterval, maxInactivity, escalation); err != nil {
		return nil, err
	}
	return &TimingParameters{
		pollInterval:  pollInterval,
		maxInactivity: maxInactivity,
		escalation:    slices.Clone(escalation),
	}, nil
}

// MustTimingParameters is NewTimingParameters for constant inputs.
func MustTimingParameters(pollInterval, maxInactivity time.Duration, escalation ...time.Duration) *TimingParameters {
	p, err := NewTimingParameters(pollInterval, maxInactivity, escalation...)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultTiming = MustTimingParameters(DefaultPollInterval, DefaultMaxInactivity)

// DefaultTimingParameters returns the process-wide default instance.
func DefaultTimingParameters() *TimingParameters {
	return defaultTiming
}

// PollInterval returns the current poll interval.
func (p *TimingParameters) PollInterval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pollInterval
}

// MaxInactivity returns the current inactivity budget.
func (p *TimingParameters) MaxInactivity() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxInactivity
}

// Escalation returns a copy of the warning thresholds.
func (p *TimingParameters) Escalation() []time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.escalation)
}

// Set replaces all values in place. Running supervisors pick the change up on their next poll.
func (p *TimingParameters) Set(pollInterval, maxInactivity time.Duration, escalation ...time.Duration) error {
	if err := validateTiming(pollInterval, maxInactivity, escalation); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pollInterval = pollInterval
	p.maxInactivity = maxInactivity
	p.escalation = slices.Clone(escalation)
	return nil
}

func validateTiming(pollInterval, maxInactivity time.Duration, escalation []time.Duration) error {
	if pollInterval <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidTiming, "poll interval must be positive"), "poll_interval", pollInterval)
	}
	if maxInactivity <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidTiming, "max inactivity must be positive"), "max_inactivity", maxInactivity)
	}
	prev := time.Duration(0)
	for _, step := range escalation {
		if step <= prev || step >= maxInactivity {
			err := zerr.Wrap(ErrInvalidTiming, "escalation steps must ascend below max inactivity")
			return zerr.With(zerr.With(err, "step", step), "max_inactivity", maxInactivity)
		}
		prev = step
	}
	return nil
}

// Timing selects the parameters for one supervised call.
// The zero value selects the process-wide default.
type Timing struct {
	params *TimingParameters
}

// UseDefaultTiming selects DefaultTimingParameters at the time the call runs.
func UseDefaultTiming() Timing {
	return Timing{}
}

// WithTiming selects explicit parameters. A nil p selects the default.
func WithTiming(p *TimingParameters) Timing {
	return Timing{params: p}
}

// IsDefault reports whether the selector defers to the process-wide default.
func (t Timing) IsDefault() bool {
	return t.params == nil
}

// Resolve returns the parameters to use.
func (t Timing) Resolve() *TimingParameters {
	if t.params == nil {
		return DefaultTimingParameters()
	}
	return t.params
}
