package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	Timing  TimingConfig
	Logging LoggingConfig
	Removal RemovalConfig
	Watch   WatchConfig
}

// TimingConfig holds the watchdog settings applied to the default timing parameters.
type TimingConfig struct {
	PollInterval  time.Duration
	MaxInactivity time.Duration
	Escalation    []time.Duration
}

// LoggingConfig controls the log level and optional rotating log file.
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RemovalConfig controls the queueing remover.
type RemovalConfig struct {
	Journal  string
	Workers  int
	Interval time.Duration
}

// WatchMode selects how destination activity is detected.
type WatchMode string

const (
	// WatchAuto uses filesystem notifications and falls back to polling.
	WatchAuto WatchMode = "auto"
	// WatchNotify uses filesystem notifications only.
	WatchNotify WatchMode = "notify"
	// WatchPoll fingerprints the tree periodically.
	WatchPoll WatchMode = "poll"
)

// WatchConfig controls destination activity detection.
type WatchConfig struct {
	Mode         WatchMode
	PollInterval time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			PollInterval:  DefaultPollInterval,
			MaxInactivity: DefaultMaxInactivity,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Removal: RemovalConfig{
			Journal:  ".fsguard/removals.json",
			Workers:  1,
			Interval: time.Minute,
		},
		Watch: WatchConfig{
			Mode:         WatchAuto,
			PollInterval: time.Second,
		},
	}
}
