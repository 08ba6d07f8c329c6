// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Execute waits for output pipes after the process was killed.
const waitDelay = time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor. logger may be nil.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd with the process environment overridden by cmd.Env.
// Every complete output line is logged and passed to onLine; stdout and stderr lines
// are delivered one at a time. Cancelling ctx kills the process.
func (e *Executor) Execute(ctx context.Context, cmd ports.Command, onLine func(line string)) error {
	if len(cmd.Argv) == 0 {
		return domain.ErrNoCommand
	}

	name := cmd.Argv[0]
	args := cmd.Argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	if len(proc.Args) > 0 {
		proc.Args[0] = name
	}
	if cmd.Dir != "" {
		proc.Dir = cmd.Dir
	}
	proc.Env = cmdEnv
	proc.WaitDelay = waitDelay

	var mu sync.Mutex
	emit := func(line string, stderr bool) {
		mu.Lock()
		defer mu.Unlock()
		if e.logger != nil {
			if stderr {
				e.logger.Warn(line)
			} else {
				e.logger.Info(line)
			}
		}
		if onLine != nil {
			onLine(line)
		}
	}
	stdout := &lineWriter{emit: func(l string) { emit(l, false) }}
	stderr := &lineWriter{emit: func(l string) { emit(l, true) }}
	proc.Stdout = stdout
	proc.Stderr = stderr

	err := proc.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		if ctxErr := context.Cause(ctx); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "command", name)
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", name), "exit_code", exitCode)
	}

	return nil
}

// lineWriter splits a byte stream into lines, holding back a trailing partial line.
type lineWriter struct {
	emit func(line string)
	buf  bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(w.buf.Next(i + 1))
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits a trailing partial line.
func (w *lineWriter) Flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

// resolveEnvironment applies overrides of the form KEY=VALUE on top of the system environment.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, list := range [][]string{sysEnv, overrides} {
		for _, entry := range list {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if _, seen := envMap[k]; !seen {
				order = append(order, k)
			}
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
