// Package activity provides activity sensors that feed the operation supervisor.
package activity

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.trai.ch/fsguard/internal/core/ports"
)

var (
	_ ports.ActivityObserver = (*RecordingSensor)(nil)
	_ ports.ActivitySensor   = (*RecordingSensor)(nil)
	_ ports.DescribingSensor = (*Describing)(nil)
)

// RecordingSensor remembers the time of its last tick. It starts out as if ticked at creation.
type RecordingSensor struct {
	last atomic.Int64
}

// NewRecordingSensor creates a sensor whose inactivity clock starts now.
func NewRecordingSensor() *RecordingSensor {
	s := &RecordingSensor{}
	s.Update()
	return s
}

// Update records activity at the current time.
func (s *RecordingSensor) Update() {
	s.last.Store(time.Now().UnixNano())
}

// LastActivity returns the time of the last tick.
func (s *RecordingSensor) LastActivity() time.Time {
	return time.Unix(0, s.last.Load())
}

// Describing is a RecordingSensor with a subject used to explain inactivity.
type Describing struct {
	*RecordingSensor
	format string
	args   []any
}

// NewDeleteActivityDetector describes inactivity of a recursive delete below path.
func NewDeleteActivityDetector(path string) *Describing {
	return &Describing{
		RecordingSensor: NewRecordingSensor(),
		format:          "No delete activity of path %s for %s",
		args:            []any{path},
	}
}

// NewOutputSensor describes inactivity of an external process named name.
func NewOutputSensor(name string) *Describing {
	return &Describing{
		RecordingSensor: NewRecordingSensor(),
		format:          "No output from %s for %s",
		args:            []any{name},
	}
}

// NewOperationSensor describes inactivity of a named filesystem operation.
func NewOperationSensor(operation, path string) *Describing {
	return &Describing{
		RecordingSensor: NewRecordingSensor(),
		format:          "No activity of %s on path %s for %s",
		args:            []any{operation, path},
	}
}

// DescribeInactivity returns a sentence naming the subject and the inactive period.
func (d *Describing) DescribeInactivity(now time.Time) string {
	args := append(append([]any{}, d.args...), FormatHMS(now.Sub(d.LastActivity())))
	return fmt.Sprintf(d.format, args...)
}

// FormatHMS renders d as HH:MM:SS.mmm.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}

// Fanout forwards every tick to all non-nil observers.
func Fanout(observers ...ports.ActivityObserver) ports.ActivityObserver {
	live := make(fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	return live
}

type fanout []ports.ActivityObserver

func (f fanout) Update() {
	for _, o := range f {
		o.Update()
	}
}

// Counter counts ticks. It is useful where progress must be reported, not timed.
type Counter struct {
	n atomic.Int64
}

// Update increments the tick count.
func (c *Counter) Update() {
	c.n.Add(1)
}

// Count returns the number of ticks so far.
func (c *Counter) Count() int64 {
	return c.n.Load()
}
