// File: internal/push/pusher.go
package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"drivesync/internal/notify"
	"drivesync/internal/runner"
)

// Bounds the completion notification, which outlives a cancelled run
const notifyTimeout = 10 * time.Second

// Returned inside an Outcome when the push command ran but exited with a non-zero status
var ErrPushFailed = errors.New("push command failed")

// One directory to push, identified by its configuration label
type Job struct {
	Label string
	Dir   string
}

// Builds one job per label, sorted by label
func JobsFrom(dirs map[string]string) []Job {
	jobs := make([]Job, 0, len(dirs))
	for label, dir := range dirs {
		jobs = append(jobs, Job{Label: label, Dir: dir})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Label < jobs[j].Label })
	return jobs
}

type Outcome struct {
	Job      Job
	Result   runner.Result
	Err      error
	Started  time.Time
	Finished time.Time
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Result.Success()
}

func (o Outcome) Duration() time.Duration {
	return o.Finished.Sub(o.Started)
}

// Receives the per-directory completion message
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type Pusher struct {
	runner   runner.Runner
	notifier Notifier
	command  string
	logger   *slog.Logger
	now      func() time.Time
}

func NewPusher(r runner.Runner, notifier Notifier, command string, logger *slog.Logger) *Pusher {
	return &Pusher{
		runner:   r,
		notifier: notifier,
		command:  command,
		logger:   logger.With("component", "pusher"),
		now:      time.Now,
	}
}

// Runs the push command with job.Dir as the child's working directory, then notifies.
// Safe for concurrent use: no process-wide state is touched.
func (p *Pusher) Push(ctx context.Context, job Job) Outcome {
	log := p.logger.With("label", job.Label, "dir", job.Dir)
	outcome := Outcome{Job: job, Started: p.now()}

	if err := checkDir(job.Dir); err != nil {
		outcome.Err = err
	} else {
		log.Debug("Pushing directory", "command", p.command)
		res, err := p.runner.Run(ctx, runner.Command{Line: p.command, Dir: job.Dir})
		outcome.Result = res
		switch {
		case err != nil:
			outcome.Err = fmt.Errorf("error running push for '%s': %w", job.Label, err)
		case !res.Success():
			outcome.Err = fmt.Errorf("%w for '%s': exit status %d", ErrPushFailed, job.Label, res.ExitCode)
		}
	}
	outcome.Finished = p.now()

	if outcome.Err != nil {
		log.Error("Push failed", "error", outcome.Err, "stderr", outcome.Result.Stderr)
	} else {
		log.Info("Push finished", "duration", outcome.Duration())
	}
	if outcome.Result.Stdout != "" {
		log.Debug("Push output", "stdout", outcome.Result.Stdout)
	}

	// A push cut short by --timeout or a signal is still reported on the desktop
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	p.notifier.Notify(notifyCtx, notify.CompletedMessage(outcome.Finished, job.Dir, outcome.Succeeded()))
	return outcome
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}
