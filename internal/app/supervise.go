package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/supervisor"
	"go.trai.ch/zerr"
)

// SuperviseRequest describes an external command run under the watchdog.
type SuperviseRequest struct {
	Argv []string
	Dir  string
	Env  []string
	// WatchDir, when set, counts changes below this directory as activity of the command.
	WatchDir string
	// Name identifies the command in warnings. It defaults to the base name of Argv[0].
	Name string
}

// SuperviseCommand runs the command and kills it once it has neither written output nor
// changed WatchDir for longer than the inactivity budget.
func (a *App) SuperviseCommand(ctx context.Context, req SuperviseRequest) (err error) {
	if len(req.Argv) == 0 {
		return domain.ErrNoCommand
	}
	name := req.Name
	if name == "" {
		name = filepath.Base(req.Argv[0])
	}

	ctx, vertex, complete := a.record(ctx, name)
	defer complete(&err)

	var out io.Writer = io.Discard
	if vertex != nil {
		out = vertex.Stdout()
	}

	sensor := activity.NewOutputSensor(name)
	cmd := ports.Command{Argv: req.Argv, Dir: req.Dir, Env: req.Env}
	run := func(ctx context.Context) error {
		stopWatch := a.watch(ctx, req.WatchDir, sensor)
		defer stopWatch()
		return a.deps.Executor.Execute(ctx, cmd, func(line string) {
			sensor.Update()
			_, _ = fmt.Fprintln(out, line)
		})
	}

	if a.overrides.Unmonitored {
		return run(ctx)
	}
	return a.supervisor.Do(ctx, supervisor.Call{
		Name:   name,
		Sensor: sensor,
		Timing: domain.UseDefaultTiming(),
	}, run)
}

// watch feeds changes below dir into observer until the returned function is called.
func (a *App) watch(ctx context.Context, dir string, observer ports.ActivityObserver) func() {
	if dir == "" || a.deps.Watchers == nil {
		return func() {}
	}

	watcher, err := a.deps.Watchers(a.config.Watch.Mode, a.config.Watch.PollInterval)
	if err != nil {
		a.logError(zerr.Wrap(err, "failed to create watcher"))
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watcher.Watch(ctx, dir, observer); err != nil && !errors.Is(err, context.Canceled) {
			a.logError(zerr.With(zerr.Wrap(err, "watching destination failed"), "path", dir))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (a *App) logError(err error) {
	if a.deps.Logger != nil {
		a.deps.Logger.Error(err)
	}
}
