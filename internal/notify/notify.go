// File: internal/notify/notify.go
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"drivesync/internal/runner"
)

const AppName = "drivesync"

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02 15:04"
)

func StartedMessage(now time.Time) string {
	return fmt.Sprintf("%s started : %s", AppName, now.Format(dateLayout))
}

// Formats the per-directory message, e.g. "09:41 - drivesync - personal - push finished"
func CompletedMessage(now time.Time, dir string, ok bool) string {
	status := "push finished"
	if !ok {
		status = "push failed"
	}
	return fmt.Sprintf("%s - %s - %s - %s", now.Format(clockLayout), AppName, baseName(dir), status)
}

func baseName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// Prints status messages and forwards them to a desktop notification command.
// Delivery failures are logged and otherwise ignored.
type Notifier struct {
	runner  runner.Runner
	command string
	out     io.Writer
	logger  *slog.Logger

	mu sync.Mutex
}

// command receives the message as $1; an empty command only prints
func NewNotifier(r runner.Runner, command string, out io.Writer, logger *slog.Logger) *Notifier {
	return &Notifier{
		runner:  r,
		command: command,
		out:     out,
		logger:  logger.With("component", "notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	fmt.Fprintln(n.out, message)
	n.mu.Unlock()

	if n.command == "" {
		return
	}

	res, err := n.runner.Run(ctx, runner.Command{Line: n.command, Args: []string{message}})
	if err != nil {
		n.logger.Warn("Failed to send desktop notification", "command", n.command, "error", err)
		return
	}
	if !res.Success() {
		n.logger.Warn("Notification command exited with non-zero status", "command", n.command, "exit_code", res.ExitCode, "stderr", res.Stderr)
	}
}
