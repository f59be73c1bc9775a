// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyExpectation = errors.New("expected confirmation value cannot be empty")

// Asks the user to confirm a destructive change to the directories file
type Prompter interface {
	// Succeeds only when the user types expectedValue exactly
	Confirm(message string, expectedValue string) (bool, error)
}

type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (p *StandardPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, ErrEmptyExpectation
	}

	fmt.Fprintln(p.writer, message)
	fmt.Fprintf(p.writer, "Type the label '%s' to confirm: ", expectedValue)

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	// A final line without newline still counts; bare EOF declines
	return strings.TrimSpace(input) == expectedValue, nil
}
