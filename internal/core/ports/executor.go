// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command is an external process to run under supervision.
type Command struct {
	Argv []string
	Dir  string
	Env  []string
}

// Executor defines the interface for executing external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd until it exits or ctx is cancelled, calling onLine for every
	// line the process writes to stdout or stderr.
	Execute(ctx context.Context, cmd Command, onLine func(line string)) error
}
