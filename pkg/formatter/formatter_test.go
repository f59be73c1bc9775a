package formatter_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drivesync/internal/push"
	"drivesync/internal/runner"
	"drivesync/pkg/formatter"
)

func TestTableAlignsColumns(t *testing.T) {
	table := formatter.NewTable([]string{"A", "LONGER"})
	table.AddRow([]string{"wide cell", "x"})
	table.AddRow([]string{"y"})

	lines := strings.Split(table.String(), "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(strings.TrimRight(line, " ")), "line %q", line)
	}
	assert.Equal(t, "+-----------+--------+", lines[0])
	assert.Equal(t, "| y         |        |", strings.TrimRight(lines[4], " "))
}

func TestTableWithoutHeaders(t *testing.T) {
	assert.Empty(t, formatter.NewTable(nil).String())
}

func TestFormatOutcomes(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	outcomes := []push.Outcome{
		{
			Job:      push.Job{Label: "personal", Dir: "/drive/personal"},
			Result:   runner.Result{Duration: time.Second},
			Started:  start,
			Finished: start.Add(1500 * time.Millisecond),
		},
		{
			Job:      push.Job{Label: "work", Dir: "/drive/work"},
			Result:   runner.Result{ExitCode: 4, Duration: time.Second},
			Err:      push.ErrPushFailed,
			Started:  start,
			Finished: start.Add(time.Second),
		},
		{
			Job:      push.Job{Label: "gone", Dir: "/drive/gone"},
			Err:      errors.New("directory not accessible"),
			Started:  start,
			Finished: start,
		},
	}

	out := formatter.NewPushFormatter().FormatOutcomes(outcomes)

	assert.Contains(t, out, "personal")
	assert.Contains(t, out, "/drive/work")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "| 4 ")
	assert.Contains(t, out, "| - ")
	assert.True(t, strings.HasSuffix(out, "1 pushed, 2 failed"))
}

func TestFormatDirectoriesSorted(t *testing.T) {
	out := formatter.NewPushFormatter().FormatDirectories(map[string]string{"work": "/w", "personal": "/p"})
	assert.Less(t, strings.Index(out, "personal"), strings.Index(out, "work"))
}

func TestFormatPlan(t *testing.T) {
	jobs := []push.Job{{Label: "a", Dir: "/tmp/a"}, {Label: "b", Dir: "/tmp/b"}}
	out := formatter.NewPushFormatter().FormatPlan(jobs, 2, "drive push -ignore-name-clashes -no-prompt .")

	assert.Contains(t, out, "Dry run: 2 directories, 2 workers")
	assert.Contains(t, out, "/tmp/b")
	assert.Contains(t, out, "command: drive push -ignore-name-clashes -no-prompt .")
}
