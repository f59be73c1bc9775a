// File: internal/runner/runner.go
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const DefaultShell = "/bin/sh"

// How long Wait keeps draining output after a cancelled child is killed.
// Descendants that escaped the process group could otherwise hold Wait open.
const waitDelay = 2 * time.Second

var ErrEmptyCommand = errors.New("empty command line")

// A single shell invocation.
// Dir is applied to the child at spawn time; the calling process never changes its own working directory.
type Command struct {
	Line string
	// Exposed to Line as $1, $2, ... so values never need shell quoting
	Args []string
	Dir  string
}

type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Returned when the child process could not be started at all
type SpawnError struct {
	Line string
	Dir  string
	Err  error
}

func (e *SpawnError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("failed to start %q in %s: %v", e.Line, e.Dir, e.Err)
	}
	return fmt.Sprintf("failed to start %q: %v", e.Line, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Runs a command to completion.
// A non-zero exit status is reported in Result.ExitCode, not as an error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

type ShellRunner struct {
	shell  string
	logger *slog.Logger
}

var _ Runner = (*ShellRunner)(nil)

func NewShellRunner(logger *slog.Logger) *ShellRunner {
	return &ShellRunner{
		shell:  DefaultShell,
		logger: logger.With("component", "runner"),
	}
}

func (r *ShellRunner) Run(ctx context.Context, c Command) (Result, error) {
	if strings.TrimSpace(c.Line) == "" {
		return Result{}, ErrEmptyCommand
	}

	// "$0" is set to the shell name so user arguments start at $1
	args := make([]string, 0, len(c.Args)+3)
	args = append(args, "-c", c.Line, "sh")
	args = append(args, c.Args...)

	cmd := exec.CommandContext(ctx, r.shell, args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	// Cancellation must reach the push tool itself, not only the shell wrapping it
	killProcessGroupOnCancel(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("Starting command", "command", c.Line, "dir", c.Dir)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, &SpawnError{Line: c.Line, Dir: c.Dir, Err: err}
	}

	waitErr := cmd.Wait()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("command %q interrupted: %w", c.Line, ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, fmt.Errorf("error waiting for %q: %w", c.Line, waitErr)
		}
	}

	r.logger.Debug("Command finished", "command", c.Line, "dir", c.Dir, "exit_code", result.ExitCode, "duration", result.Duration)
	return result, nil
}
