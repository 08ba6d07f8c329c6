package config

import "time"

// File represents the structure of the fsguard.yaml configuration file.
type File struct {
	Timing  TimingDTO  `yaml:"timing"`
	Logging LoggingDTO `yaml:"logging"`
	Removal RemovalDTO `yaml:"removal"`
	Watch   WatchDTO   `yaml:"watch"`
}

// TimingDTO configures the watchdog.
type TimingDTO struct {
	PollInterval  time.Duration   `yaml:"pollInterval"`
	MaxInactivity time.Duration   `yaml:"maxInactivity"`
	Escalation    []time.Duration `yaml:"escalation"`
}

// LoggingDTO configures the logger.
type LoggingDTO struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// RemovalDTO configures the removal queue.
type RemovalDTO struct {
	Journal  string        `yaml:"journal"`
	Workers  int           `yaml:"workers"`
	Interval time.Duration `yaml:"interval"`
}

// WatchDTO configures destination activity detection.
type WatchDTO struct {
	Mode         string        `yaml:"mode"`
	PollInterval time.Duration `yaml:"pollInterval"`
}

// Env holds the FSGUARD_* environment overrides. Zero values leave the file setting alone.
type Env struct {
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL"`
	MaxInactivity time.Duration `envconfig:"MAX_INACTIVITY"`
	LogLevel      string        `envconfig:"LOG_LEVEL"`
	LogFile       string        `envconfig:"LOG_FILE"`
	Journal       string        `envconfig:"JOURNAL"`
}
