package domain

import "strings"

// RemovalStatus is the lifecycle state of a path in the removal journal.
type RemovalStatus string

const (
	// RemovalPending indicates the path waits for the next drain.
	RemovalPending RemovalStatus = "pending"
	// RemovalRunning indicates a worker is deleting the path.
	RemovalRunning RemovalStatus = "running"
	// RemovalDone indicates the path no longer exists.
	RemovalDone RemovalStatus = "done"
	// RemovalFailed indicates the last attempt left the path behind; it is retried on the next drain.
	RemovalFailed RemovalStatus = "failed"
	// RemovalHung indicates the last attempt was abandoned by the watchdog.
	RemovalHung RemovalStatus = "hung"
)

// IsTerminal reports whether the status needs no further work.
func (s RemovalStatus) IsTerminal() bool {
	return s == RemovalDone
}

// NormalizeRemovalStatus converts a string to a RemovalStatus, defaulting to pending if unknown.
func NormalizeRemovalStatus(s string) RemovalStatus {
	switch strings.ToLower(s) {
	case string(RemovalRunning):
		return RemovalRunning
	case string(RemovalDone):
		return RemovalDone
	case string(RemovalFailed):
		return RemovalFailed
	case string(RemovalHung):
		return RemovalHung
	default:
		return RemovalPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel maps a configured level name to a LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
