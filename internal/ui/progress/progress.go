// File: internal/ui/progress/progress.go
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"drivesync/internal/push"
)

type state int

const (
	statePending state = iota
	stateRunning
	stateSucceeded
	stateFailed
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type jobStartedMsg struct{ job push.Job }

type jobFinishedMsg struct{ outcome push.Outcome }

type runDoneMsg struct{}

type row struct {
	state  state
	detail string
}

// Renders one line per directory while the pool runs
type Model struct {
	jobs       []push.Job
	rows       map[string]*row
	spinner    spinner.Model
	cancel     context.CancelFunc
	cancelling bool
	done       bool
	labelWidth int
}

// cancel is invoked when the user presses ctrl+c; it may be nil
func NewModel(jobs []push.Job, cancel context.CancelFunc) Model {
	rows := make(map[string]*row, len(jobs))
	width := 0
	for _, job := range jobs {
		rows[job.Label] = &row{state: statePending}
		width = max(width, lipgloss.Width(job.Label))
	}

	return Model{
		jobs:       jobs,
		rows:       rows,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		cancel:     cancel,
		labelWidth: width,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.cancelling {
			m.cancelling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case jobStartedMsg:
		if r, ok := m.rows[msg.job.Label]; ok {
			r.state = stateRunning
		}
		return m, nil

	case jobFinishedMsg:
		if r, ok := m.rows[msg.outcome.Job.Label]; ok {
			if msg.outcome.Succeeded() {
				r.state = stateSucceeded
				r.detail = msg.outcome.Duration().Round(100 * time.Millisecond).String()
			} else {
				r.state = stateFailed
				r.detail = failureDetail(msg.outcome)
			}
		}
		return m, nil

	case runDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	switch {
	case m.done:
		fmt.Fprintf(&sb, "Pushed %d directories\n", len(m.jobs))
	case m.cancelling:
		sb.WriteString("Cancelling, waiting for running pushes to stop...\n")
	default:
		fmt.Fprintf(&sb, "Pushing %d directories (ctrl+c to cancel)\n", len(m.jobs))
	}

	for _, job := range m.jobs {
		r := m.rows[job.Label]
		label := labelStyle.Render(job.Label) + strings.Repeat(" ", m.labelWidth-lipgloss.Width(job.Label))

		switch r.state {
		case statePending:
			fmt.Fprintf(&sb, "  %s %s %s\n", dimStyle.Render("·"), label, dimStyle.Render("pending"))
		case stateRunning:
			fmt.Fprintf(&sb, "  %s %s %s\n", m.spinner.View(), label, dimStyle.Render(job.Dir))
		case stateSucceeded:
			fmt.Fprintf(&sb, "  %s %s %s\n", okStyle.Render("✓"), label, r.detail)
		case stateFailed:
			fmt.Fprintf(&sb, "  %s %s %s\n", failedStyle.Render("✗"), label, failedStyle.Render(r.detail))
		}
	}

	return sb.String()
}

func failureDetail(outcome push.Outcome) string {
	if outcome.Err != nil {
		return outcome.Err.Error()
	}
	return fmt.Sprintf("exit status %d", outcome.Result.ExitCode)
}

// Forwards pool events into the running program
type observer struct {
	program *tea.Program
}

func (o *observer) JobStarted(job push.Job) {
	o.program.Send(jobStartedMsg{job: job})
}

func (o *observer) JobFinished(outcome push.Outcome) {
	o.program.Send(jobFinishedMsg{outcome: outcome})
}

// Matches (*push.Pool).Run
type Work func(ctx context.Context, jobs []push.Job, observer push.Observer) ([]push.Outcome, error)

// Runs work while rendering live progress to out. A nil in disables keyboard input.
// It returns once both the work and the view have finished.
func Run(ctx context.Context, in io.Reader, out io.Writer, jobs []push.Job, work Work) ([]push.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(
		NewModel(jobs, cancel),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	var (
		outcomes []push.Outcome
		workErr  error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		outcomes, workErr = work(ctx, jobs, &observer{program: program})
		program.Send(runDoneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-finished
		return outcomes, fmt.Errorf("progress view failed: %w", err)
	}

	<-finished
	return outcomes, workErr
}
