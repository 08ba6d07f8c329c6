// Package config provides the configuration loader for fsguard.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "FSGUARD"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader. logger may be nil.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads path, applies FSGUARD_* overrides and validates the result.
// A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case err == nil:
		var file File
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
		applyFile(cfg, &file)
	case errors.Is(err, fs.ErrNotExist):
		if l.logger != nil && path != "" {
			l.logger.Info("no configuration file at " + path + ", using defaults")
		}
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, zerr.Wrap(err, "failed to read environment overrides")
	}
	applyEnv(cfg, &env)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *domain.Config, f *File) {
	if f.Timing.PollInterval != 0 {
		cfg.Timing.PollInterval = f.Timing.PollInterval
	}
	if f.Timing.MaxInactivity != 0 {
		cfg.Timing.MaxInactivity = f.Timing.MaxInactivity
	}
	if len(f.Timing.Escalation) > 0 {
		cfg.Timing.Escalation = f.Timing.Escalation
	}

	if f.Logging.Level != "" {
		cfg.Logging.Level = f.Logging.Level
	}
	if f.Logging.File != "" {
		cfg.Logging.File = f.Logging.File
	}
	if f.Logging.MaxSizeMB != 0 {
		cfg.Logging.MaxSizeMB = f.Logging.MaxSizeMB
	}
	if f.Logging.MaxBackups != 0 {
		cfg.Logging.MaxBackups = f.Logging.MaxBackups
	}
	if f.Logging.MaxAgeDays != 0 {
		cfg.Logging.MaxAgeDays = f.Logging.MaxAgeDays
	}
	cfg.Logging.Compress = f.Logging.Compress

	if f.Removal.Journal != "" {
		cfg.Removal.Journal = f.Removal.Journal
	}
	if f.Removal.Workers != 0 {
		cfg.Removal.Workers = f.Removal.Workers
	}
	if f.Removal.Interval != 0 {
		cfg.Removal.Interval = f.Removal.Interval
	}

	if f.Watch.Mode != "" {
		cfg.Watch.Mode = domain.WatchMode(f.Watch.Mode)
	}
	if f.Watch.PollInterval != 0 {
		cfg.Watch.PollInterval = f.Watch.PollInterval
	}
}

func applyEnv(cfg *domain.Config, env *Env) {
	if env.PollInterval != 0 {
		cfg.Timing.PollInterval = env.PollInterval
	}
	if env.MaxInactivity != 0 {
		cfg.Timing.MaxInactivity = env.MaxInactivity
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Logging.File = env.LogFile
	}
	if env.Journal != "" {
		cfg.Removal.Journal = env.Journal
	}
}

// Validate checks the constraints the rest of the system relies on.
func Validate(cfg *domain.Config) error {
	if _, err := domain.NewTimingParameters(cfg.Timing.PollInterval, cfg.Timing.MaxInactivity, cfg.Timing.Escalation...); err != nil {
		return err
	}

	if cfg.Removal.Workers < 1 {
		return zerr.With(zerr.New("removal workers must be at least 1"), "workers", cfg.Removal.Workers)
	}
	if cfg.Removal.Interval <= 0 {
		return zerr.With(zerr.New("removal interval must be positive"), "interval", cfg.Removal.Interval)
	}

	switch cfg.Watch.Mode {
	case domain.WatchAuto, domain.WatchNotify, domain.WatchPoll:
	default:
		return zerr.With(zerr.New("unknown watch mode"), "mode", string(cfg.Watch.Mode))
	}
	if cfg.Watch.PollInterval <= 0 {
		return zerr.With(zerr.New("watch poll interval must be positive"), "poll_interval", cfg.Watch.PollInterval)
	}
	return nil
}
