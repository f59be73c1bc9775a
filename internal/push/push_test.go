package push_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivesync/internal/notify"
	"drivesync/internal/push"
	"drivesync/internal/runner"
)

const testPushCommand = "drive push -ignore-name-clashes -no-prompt ."

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Records every command; safe for concurrent workers
type fakeRunner struct {
	mu       sync.Mutex
	commands []runner.Command
	delay    time.Duration
	respond  func(runner.Command) (runner.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, c runner.Command) (runner.Result, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.commands = append(f.commands, c)
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(c)
	}
	return runner.Result{}, nil
}

func (f *fakeRunner) recorded() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.commands...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func TestJobsFromSortsByLabel(t *testing.T) {
	jobs := push.JobsFrom(map[string]string{"work": "/w", "archive": "/a", "personal": "/p"})
	assert.Equal(t, []push.Job{
		{Label: "archive", Dir: "/a"},
		{Label: "personal", Dir: "/p"},
		{Label: "work", Dir: "/w"},
	}, jobs)
}

func TestPusherSuccess(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{}
	n := &recordingNotifier{}
	p := push.NewPusher(r, n, testPushCommand, discardLogger())

	outcome := p.Push(context.Background(), push.Job{Label: "personal", Dir: dir})

	assert.True(t, outcome.Succeeded())
	assert.NoError(t, outcome.Err)
	assert.False(t, outcome.Finished.Before(outcome.Started))

	cmds := r.recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, testPushCommand, cmds[0].Line)
	assert.Equal(t, dir, cmds[0].Dir)

	require.Len(t, n.messages, 1)
	assert.Regexp(t, `^\d{2}:\d{2} - drivesync - `+regexp.QuoteMeta(filepath.Base(dir))+` - push finished$`, n.messages[0])
}

func TestPusherSurfacesExitStatus(t *testing.T) {
	r := &fakeRunner{respond: func(runner.Command) (runner.Result, error) {
		return runner.Result{ExitCode: 2, Stderr: "quota exceeded"}, nil
	}}
	n := &recordingNotifier{}
	p := push.NewPusher(r, n, testPushCommand, discardLogger())

	outcome := p.Push(context.Background(), push.Job{Label: "work", Dir: t.TempDir()})

	assert.False(t, outcome.Succeeded())
	assert.ErrorIs(t, outcome.Err, push.ErrPushFailed)
	assert.Contains(t, outcome.Err.Error(), "exit status 2")
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "push failed")
}

func TestPusherSpawnError(t *testing.T) {
	r := &fakeRunner{respond: func(c runner.Command) (runner.Result, error) {
		return runner.Result{}, &runner.SpawnError{Line: c.Line, Err: errors.New("exec: \"drive\": not found")}
	}}
	n := &recordingNotifier{}
	p := push.NewPusher(r, n, testPushCommand, discardLogger())

	outcome := p.Push(context.Background(), push.Job{Label: "work", Dir: t.TempDir()})

	var spawnErr *runner.SpawnError
	assert.ErrorAs(t, outcome.Err, &spawnErr)
	assert.False(t, outcome.Succeeded())
	assert.Len(t, n.messages, 1)
}

func TestPusherMissingDirectory(t *testing.T) {
	r := &fakeRunner{}
	n := &recordingNotifier{}
	p := push.NewPusher(r, n, testPushCommand, discardLogger())

	missing := filepath.Join(t.TempDir(), "gone")
	outcome := p.Push(context.Background(), push.Job{Label: "gone", Dir: missing})

	assert.Error(t, outcome.Err)
	assert.Empty(t, r.recorded(), "the push command must not run without its directory")
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "gone - push failed")
}

// Captures the context state each notification was dispatched with
type contextNotifier struct {
	mu       sync.Mutex
	messages []string
	errs     []error
}

func (n *contextNotifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.errs = append(n.errs, ctx.Err())
}

func TestPusherNotifiesOnLiveContextAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeRunner{respond: func(runner.Command) (runner.Result, error) {
		cancel()
		return runner.Result{ExitCode: -1}, context.Canceled
	}}
	n := &contextNotifier{}
	p := push.NewPusher(r, n, testPushCommand, discardLogger())

	outcome := p.Push(ctx, push.Job{Label: "work", Dir: t.TempDir()})

	assert.ErrorIs(t, outcome.Err, context.Canceled)
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "push failed")
	assert.NoError(t, n.errs[0])
}

func TestPusherTimeoutStillSendsDesktopNotification(t *testing.T) {
	dir := t.TempDir()
	notified := filepath.Join(t.TempDir(), "notified")

	shell := runner.NewShellRunner(discardLogger())
	n := notify.NewNotifier(shell, `echo "$1" >> "`+notified+`"`, io.Discard, discardLogger())
	p := push.NewPusher(shell, n, "sleep 5", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	outcome := p.Push(ctx, push.Job{Label: "slow", Dir: dir})
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)

	data, err := os.ReadFile(notified)
	require.NoError(t, err, "the notify command must run after the push was cut short")
	assert.Regexp(t, `^\d{2}:\d{2} - drivesync - `+regexp.QuoteMeta(filepath.Base(dir))+` - push failed\n$`, string(data))
}
