package ops

import (
	"context"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/supervisor"
)

var _ FileOperations = (*Monitored)(nil)

// Monitored routes every call of the wrapped façade through the supervisor.
// Each call gets its own sensor, ticked by the traversal alongside the caller's observer.
type Monitored struct {
	inner  FileOperations
	sup    *supervisor.Supervisor
	timing domain.Timing
}

// NewMonitored wraps inner. The zero Timing selects the process-wide default.
func NewMonitored(inner FileOperations, sup *supervisor.Supervisor, timing domain.Timing) *Monitored {
	return &Monitored{inner: inner, sup: sup, timing: timing}
}

// monitor supervises op under sensor, feeding it the sensor fanned out with observer.
func monitor[T any](
	ctx context.Context,
	m *Monitored,
	name string,
	sensor *activity.Describing,
	observer ports.ActivityObserver,
	op func(ctx context.Context, observer ports.ActivityObserver) (T, error),
) (T, error) {
	call := supervisor.Call{Name: name, Sensor: sensor, Timing: m.timing}
	tick := activity.Fanout(sensor, observer)
	return supervisor.Supervise(ctx, m.sup, call, func(ctx context.Context) (T, error) {
		return op(ctx, tick)
	})
}

func (m *Monitored) run(ctx context.Context, name, path string, op func(ctx context.Context) error) error {
	_, err := monitor(ctx, m, name, activity.NewOperationSensor(name, path), nil,
		func(ctx context.Context, _ ports.ActivityObserver) (struct{}, error) {
			return struct{}{}, op(ctx)
		})
	return err
}

func (m *Monitored) Exists(ctx context.Context, path string) (bool, error) {
	return monitor(ctx, m, "exists", activity.NewOperationSensor("exists", path), nil,
		func(ctx context.Context, _ ports.ActivityObserver) (bool, error) {
			return m.inner.Exists(ctx, path)
		})
}

func (m *Monitored) DeleteRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) error {
	_, err := monitor(ctx, m, "deleteRecursively", activity.NewDeleteActivityDetector(path), observer,
		func(ctx context.Context, tick ports.ActivityObserver) (struct{}, error) {
			return struct{}{}, m.inner.DeleteRecursively(ctx, path, filter, tick)
		})
	return err
}

func (m *Monitored) RemoveRecursively(ctx context.Context, path string, filter domain.PathFilter, observer ports.ActivityObserver) (bool, error) {
	return monitor(ctx, m, "removeRecursively", activity.NewDeleteActivityDetector(path), observer,
		func(ctx context.Context, tick ports.ActivityObserver) (bool, error) {
			return m.inner.RemoveRecursively(ctx, path, filter, tick)
		})
}

func (m *Monitored) LastChanged(ctx context.Context, root string, subdirectoriesOnly bool, threshold time.Time, observer ports.ActivityObserver) (time.Time, error) {
	return monitor(ctx, m, "lastChanged", activity.NewOperationSensor("lastChanged", root), observer,
		func(ctx context.Context, tick ports.ActivityObserver) (time.Time, error) {
			return m.inner.LastChanged(ctx, root, subdirectoriesOnly, threshold, tick)
		})
}

func (m *Monitored) LastChangedRelative(ctx context.Context, root string, subdirectoriesOnly bool, minAge time.Duration, observer ports.ActivityObserver) (time.Time, error) {
	return monitor(ctx, m, "lastChangedRelative", activity.NewOperationSensor("lastChangedRelative", root), observer,
		func(ctx context.Context, tick ports.ActivityObserver) (time.Time, error) {
			return m.inner.LastChangedRelative(ctx, root, subdirectoriesOnly, minAge, tick)
		})
}

func (m *Monitored) ListFiles(ctx context.Context, dir string, exts []string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return monitor(ctx, m, "listFiles", activity.NewOperationSensor("listFiles", dir), observer,
		func(ctx context.Context, tick ports.ActivityObserver) ([]domain.Entry, error) {
			return m.inner.ListFiles(ctx, dir, exts, recursive, tick)
		})
}

func (m *Monitored) ListDirectories(ctx context.Context, dir string, filter domain.PathFilter, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return monitor(ctx, m, "listDirectories", activity.NewOperationSensor("listDirectories", dir), observer,
		func(ctx context.Context, tick ports.ActivityObserver) ([]domain.Entry, error) {
			return m.inner.ListDirectories(ctx, dir, filter, recursive, tick)
		})
}

func (m *Monitored) ListFilesAndDirectories(ctx context.Context, dir string, recursive bool, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return monitor(ctx, m, "listFilesAndDirectories", activity.NewOperationSensor("listFilesAndDirectories", dir), observer,
		func(ctx context.Context, tick ports.ActivityObserver) ([]domain.Entry, error) {
			return m.inner.ListFilesAndDirectories(ctx, dir, recursive, tick)
		})
}

func (m *Monitored) Find(ctx context.Context, root string, filter domain.PathFilter, observer ports.ActivityObserver) ([]domain.Entry, error) {
	return monitor(ctx, m, "find", activity.NewOperationSensor("find", root), observer,
		func(ctx context.Context, tick ports.ActivityObserver) ([]domain.Entry, error) {
			return m.inner.Find(ctx, root, filter, tick)
		})
}

func (m *Monitored) Rename(ctx context.Context, from, to string) error {
	return m.run(ctx, "rename", from, func(ctx context.Context) error {
		return m.inner.Rename(ctx, from, to)
	})
}

func (m *Monitored) Mkdir(ctx context.Context, path string) error {
	return m.run(ctx, "mkdir", path, func(ctx context.Context) error {
		return m.inner.Mkdir(ctx, path)
	})
}

func (m *Monitored) Touch(ctx context.Context, path string, mtime time.Time) error {
	return m.run(ctx, "touch", path, func(ctx context.Context) error {
		return m.inner.Touch(ctx, path, mtime)
	})
}
