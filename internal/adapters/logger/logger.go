// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	_ ports.Logger        = (*Logger)(nil)
	_ ports.LogConfigurer = (*Logger)(nil)
)

// messager describes an error that can report its own message without the chain,
// as zerr errors do.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	output io.Writer
	closer io.Closer
	mu     sync.RWMutex
}

// New creates a new Logger writing text records to stderr at INFO.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}}
	l.setOutput(os.Stderr)
	return l
}

// SetOutput updates the logger's output destination. A nil w selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setOutput(w)
}

func (l *Logger) setOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level}))
}

// SetLevel changes the minimum level of emitted records.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// Configure applies the level and, if cfg.File is set, switches to a rotating log file.
func (l *Logger) Configure(cfg domain.LoggingConfig) error {
	l.SetLevel(domain.ParseLogLevel(cfg.Level))

	if cfg.File == "" {
		return nil
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		_ = l.closer.Close()
	}
	l.closer = rotating
	l.setOutput(rotating)
	return nil
}

// Close closes the rotating log file, if any, and falls back to stderr.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.setOutput(os.Stderr)
	return err
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its chain of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages := causes(err)
	args := make([]any, 0, 2)
	if len(messages) > 1 {
		args = append(args, "caused_by", strings.Join(messages[1:], " → "))
	}
	l.logger.Error(messages[0], args...)
}

// causes collects the message of every zerr layer and the full text of the first foreign error.
func causes(err error) []string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}
	return messages
}
