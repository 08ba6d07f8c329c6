package ports

import "go.trai.ch/fsguard/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}

// LogConfigurer applies logging configuration to a Logger after it was created.
type LogConfigurer interface {
	// Configure sets the level and, when a file is configured, the rotating log destination.
	Configure(cfg domain.LoggingConfig) error
	// Close releases the log destination.
	Close() error
}
