// File: internal/push/pool.go
package push

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Anything able to push a single job; *Pusher in production
type JobPusher interface {
	Push(ctx context.Context, job Job) Outcome
}

// Optional progress hooks; called from worker goroutines
type Observer interface {
	JobStarted(job Job)
	JobFinished(outcome Outcome)
}

// min(parallelism, jobs), never below one when there is work
func WorkerCount(parallelism, jobs int) int {
	if jobs <= 0 {
		return 0
	}
	return max(1, min(parallelism, jobs))
}

type Pool struct {
	pusher      JobPusher
	parallelism func() int
	logger      *slog.Logger
}

type PoolOption func(*Pool)

// Replaces host parallelism (runtime.NumCPU) as the upper bound on workers
func WithParallelism(fn func() int) PoolOption {
	return func(p *Pool) {
		p.parallelism = fn
	}
}

// A positive n caps workers at n; zero keeps the host default
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.parallelism = func() int { return n }
		}
	}
}

func NewPool(pusher JobPusher, logger *slog.Logger, opts ...PoolOption) *Pool {
	p := &Pool{
		pusher:      pusher,
		parallelism: runtime.NumCPU,
		logger:      logger.With("component", "pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) Workers(jobs int) int {
	return WorkerCount(p.parallelism(), jobs)
}

// Pushes every job and waits for all of them.
// Outcomes are returned in job order; the error aggregates every failed push and is nil when all succeeded.
// A failing job never stops the others; only ctx cancellation does.
func (p *Pool) Run(ctx context.Context, jobs []Job, observer Observer) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))
	if len(jobs) == 0 {
		p.logger.Info("No directories to push")
		return outcomes, nil
	}

	workers := p.Workers(len(jobs))
	p.logger.Info("Starting pushes", "directories", len(jobs), "workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if observer != nil {
				observer.JobStarted(job)
			}
			outcome := p.pusher.Push(ctx, job)
			outcomes[i] = outcome
			if observer != nil {
				observer.JobFinished(outcome)
			}
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			result = multierror.Append(result, outcome.failure())
		}
	}

	p.logger.Info("All pushes completed", "directories", len(jobs), "failed", failedCount(result))
	return outcomes, result.ErrorOrNil()
}

func failedCount(err *multierror.Error) int {
	if err == nil {
		return 0
	}
	return len(err.Errors)
}

func (o Outcome) failure() error {
	if o.Err != nil {
		return o.Err
	}
	return fmt.Errorf("%w for '%s': exit status %d", ErrPushFailed, o.Job.Label, o.Result.ExitCode)
}
