// Package supervisor runs blocking operations under an inactivity watchdog.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/activity"
)

// Operation is a blocking call that checks ctx at its checkpoints.
type Operation[T any] func(ctx context.Context) (T, error)

// Call names a supervised invocation and selects its sensor and timing.
// A sensor must not be shared between concurrent calls.
type Call struct {
	Name   string
	Sensor ports.ActivitySensor
	Timing domain.Timing
}

// Supervisor holds the collaborators shared by all supervised calls.
type Supervisor struct {
	logger ports.Logger
}

// New creates a Supervisor. logger may be nil.
func New(logger ports.Logger) *Supervisor {
	return &Supervisor{logger: logger}
}

type result[T any] struct {
	value T
	err   error
}

// Supervise runs op on a worker goroutine while the caller polls call.Sensor.
// When the sensor has been inactive for longer than the budget, the worker's context
// is cancelled and a hang error is returned without waiting for the worker. Cancellation
// only takes effect at the worker's next checkpoint. Otherwise op's result and error
// are returned unchanged.
func Supervise[T any](ctx context.Context, s *Supervisor, call Call, op Operation[T]) (T, error) {
	var zero T

	sensor := call.Sensor
	if sensor == nil {
		sensor = activity.NewRecordingSensor()
	}
	params := call.Timing.Resolve()

	workCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	done := make(chan result[T], 1)
	go func() {
		v, err := op(workCtx)
		done <- result[T]{value: v, err: err}
	}()

	poll := params.PollInterval()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	warned := 0
	for {
		select {
		case r := <-done:
			return r.value, r.err
		case <-ctx.Done():
			err := domain.NewCancelled("", context.Cause(ctx))
			err.Operation = call.Name
			return zero, err
		case <-ticker.C:
			now := time.Now()
			elapsed := now.Sub(sensor.LastActivity())

			if elapsed > params.MaxInactivity() {
				s.warn(describe(sensor, call.Name, now, elapsed))
				err := domain.NewHangTimeout(call.Name, elapsed)
				cancel(err)
				return zero, err
			}

			warned = s.escalate(call.Name, params.Escalation(), elapsed, warned)

			if p := params.PollInterval(); p != poll {
				poll = p
				ticker.Reset(p)
			}
		}
	}
}

// Do supervises an operation that only returns an error.
func (s *Supervisor) Do(ctx context.Context, call Call, op func(ctx context.Context) error) error {
	_, err := Supervise(ctx, s, call, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Wrap binds op to the watchdog so it can be passed around as a plain Operation.
func Wrap[T any](s *Supervisor, call Call, op Operation[T]) Operation[T] {
	return func(ctx context.Context) (T, error) {
		return Supervise(ctx, s, call, op)
	}
}

// escalate logs one warning per escalation step crossed since activity was last seen
// and returns the number of steps currently crossed.
func (s *Supervisor) escalate(name string, steps []time.Duration, elapsed time.Duration, warned int) int {
	crossed := 0
	for _, step := range steps {
		if elapsed > step {
			crossed++
		}
	}
	for i := warned; i < crossed; i++ {
		s.warn(fmt.Sprintf("operation %s inactive for %dms (warning %d of %d)",
			name, elapsed.Milliseconds(), i+1, len(steps)))
	}
	return crossed
}

func (s *Supervisor) warn(msg string) {
	if s != nil && s.logger != nil {
		s.logger.Warn(msg)
	}
}

func describe(sensor ports.ActivitySensor, name string, now time.Time, elapsed time.Duration) string {
	if d, ok := sensor.(ports.DescribingSensor); ok {
		return d.DescribeInactivity(now)
	}
	return fmt.Sprintf("operation %s inactive for %dms", name, elapsed.Milliseconds())
}
