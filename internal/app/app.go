// Package app implements the application layer for fsguard.
package app

import (
	"context"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/engine/ops"
	"go.trai.ch/fsguard/internal/engine/supervisor"
	"go.trai.ch/zerr"
)

// Overrides are command line settings that win over file and environment configuration.
type Overrides struct {
	// Unmonitored runs every operation without the inactivity watchdog.
	Unmonitored bool
	// MaxInactivity replaces the configured inactivity budget when positive.
	MaxInactivity time.Duration
	// PollInterval replaces the configured watchdog poll interval when positive.
	PollInterval time.Duration
	// Verbose logs every deleted node.
	Verbose bool
}

// Dependencies are the ports the App is built from.
type Dependencies struct {
	ConfigLoader ports.ConfigLoader
	LogConfig    ports.LogConfigurer
	Logger       ports.Logger
	FileSystem   ports.FileSystem
	Finder       ports.Finder
	Resolver     ports.PathResolver
	Executor     ports.Executor
	Telemetry    ports.Telemetry
	Watchers     ports.WatcherFactory
	OpenJournal  ports.JournalOpener
}

// App represents the main application logic.
type App struct {
	deps       Dependencies
	supervisor *supervisor.Supervisor
	factory    *ops.Factory
	config     *domain.Config
	overrides  Overrides
}

// New creates a new App instance running on the default configuration until LoadConfig is called.
func New(deps Dependencies) *App {
	sup := supervisor.New(deps.Logger)
	return &App{
		deps:       deps,
		supervisor: sup,
		factory:    ops.NewFactory(deps.FileSystem, deps.Logger, sup),
		config:     domain.DefaultConfig(),
	}
}

// LoadConfig reads the configuration at path, applies the overrides and reconfigures
// logging and the process-wide default timing in place.
func (a *App) LoadConfig(path string, overrides Overrides) error {
	cfg, err := a.deps.ConfigLoader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if overrides.MaxInactivity > 0 {
		cfg.Timing.MaxInactivity = overrides.MaxInactivity
	}
	if overrides.PollInterval > 0 {
		cfg.Timing.PollInterval = overrides.PollInterval
	}

	// Escalation steps that no longer fit a lowered budget are dropped.
	escalation := make([]time.Duration, 0, len(cfg.Timing.Escalation))
	for _, step := range cfg.Timing.Escalation {
		if step < cfg.Timing.MaxInactivity {
			escalation = append(escalation, step)
		}
	}
	cfg.Timing.Escalation = escalation

	if err := domain.DefaultTimingParameters().Set(cfg.Timing.PollInterval, cfg.Timing.MaxInactivity, escalation...); err != nil {
		return err
	}

	if a.deps.LogConfig != nil {
		if err := a.deps.LogConfig.Configure(cfg.Logging); err != nil {
			return zerr.Wrap(err, "failed to configure logging")
		}
	}

	a.factory.SetVerbose(overrides.Verbose)
	a.config = cfg
	a.overrides = overrides
	return nil
}

// Config returns the active configuration.
func (a *App) Config() *domain.Config {
	return a.config
}

// Close flushes telemetry and releases the log destination.
func (a *App) Close() error {
	var errs []error
	if a.deps.Telemetry != nil {
		if err := a.deps.Telemetry.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.deps.LogConfig != nil {
		if err := a.deps.LogConfig.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return zerr.Wrap(errs[0], "failed to close application")
	}
	return nil
}

// session starts a unit of work honouring the overrides.
func (a *App) session(name string) *ops.Session {
	return a.factory.NewSession(name, ops.SessionOptions{
		Unmonitored: a.overrides.Unmonitored,
		Timing:      domain.UseDefaultTiming(),
	})
}

// record starts a telemetry vertex. The returned function completes it with the final error.
func (a *App) record(ctx context.Context, name string) (context.Context, ports.Vertex, func(*error)) {
	if a.deps.Telemetry == nil {
		return ctx, nil, func(*error) {}
	}
	ctx, vertex := a.deps.Telemetry.Record(ctx, name)
	return ctx, vertex, func(errp *error) {
		vertex.Complete(*errp)
	}
}

func (a *App) logInfo(msg string) {
	if a.deps.Logger != nil {
		a.deps.Logger.Info(msg)
	}
}
