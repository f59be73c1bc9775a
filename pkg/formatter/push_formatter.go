// File: pkg/formatter/push_formatter.go
package formatter

import (
	"fmt"
	"strconv"
	"time"

	"drivesync/internal/push"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

type PushFormatter struct{}

func NewPushFormatter() *PushFormatter {
	return &PushFormatter{}
}

// Summarizes a finished run, one row per directory
func (f *PushFormatter) FormatOutcomes(outcomes []push.Outcome) string {
	table := NewTable([]string{"LABEL", "DIRECTORY", "STATUS", "EXIT", "DURATION"})

	failed := 0
	for _, outcome := range outcomes {
		status := okStyle.Render("ok")
		if !outcome.Succeeded() {
			status = failedStyle.Render("failed")
			failed++
		}

		table.AddRow([]string{
			outcome.Job.Label,
			outcome.Job.Dir,
			status,
			exitColumn(outcome),
			outcome.Duration().Round(time.Millisecond).String(),
		})
	}

	return fmt.Sprintf("%s\n%d pushed, %d failed", table.String(), len(outcomes)-failed, failed)
}

// Lists the configured directories
func (f *PushFormatter) FormatDirectories(dirs map[string]string) string {
	table := NewTable([]string{"LABEL", "DIRECTORY"})
	for _, job := range push.JobsFrom(dirs) {
		table.AddRow([]string{job.Label, job.Dir})
	}
	return table.String()
}

// Describes what a run would do without doing it
func (f *PushFormatter) FormatPlan(jobs []push.Job, workers int, command string) string {
	table := NewTable([]string{"LABEL", "DIRECTORY"})
	for _, job := range jobs {
		table.AddRow([]string{job.Label, job.Dir})
	}

	title := fmt.Sprintf("Dry run: %d directories, %d workers", len(jobs), workers)
	return fmt.Sprintf("%s\n%s\ncommand: %s", FormatHeaderSection(title), table.String(), command)
}

// The push never ran when it failed before or during spawn
func exitColumn(outcome push.Outcome) string {
	if outcome.Err != nil && outcome.Result.Duration == 0 {
		return "-"
	}
	return strconv.Itoa(outcome.Result.ExitCode)
}
