// Package prompt is the interactive-choice capability the core depends on.
// The restore pipeline never formats terminal output itself; it asks an
// Asker and acts on the answer, which keeps every decision scriptable in
// tests.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Asker presents enumerated choices and yes/no questions to the operator
type Asker interface {
	// Ask presents options and returns the index of the selected one
	Ask(prompt string, options []string) (int, error)

	// Confirm asks a yes/no question with a default answer
	Confirm(prompt string, def bool) (bool, error)
}

// TerminalAsker reads answers line-by-line from an input stream, normally
// stdin. Rendering is plain text on purpose; anything fancier belongs to a
// different collaborator.
type TerminalAsker struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalAsker creates an Asker over the given streams
func NewTerminalAsker(in io.Reader, out io.Writer) *TerminalAsker {
	return &TerminalAsker{in: bufio.NewReader(in), out: out}
}

// Ask prints the numbered options and reads a selection until valid
func (t *TerminalAsker) Ask(prompt string, options []string) (int, error) {
	fmt.Fprintf(t.out, "%s\n", prompt)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(t.out, "> ")
		line, err := t.in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.out, "enter a number between 1 and %d\n", len(options))
	}
}

// Confirm asks a [y/n] question; an empty answer picks the default
func (t *TerminalAsker) Confirm(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(t.out, "%s [%s] ", prompt, hint)
		line, err := t.in.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// ScriptedAsker replays canned answers, for tests and non-interactive runs
type ScriptedAsker struct {
	// Choices are consumed by Ask in order
	Choices []int
	// Confirms are consumed by Confirm in order
	Confirms []bool

	askIdx     int
	confirmIdx int

	// Prompts records every prompt seen, for assertions
	Prompts []string
}

// Ask returns the next scripted choice
func (s *ScriptedAsker) Ask(prompt string, options []string) (int, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.askIdx >= len(s.Choices) {
		return 0, fmt.Errorf("no scripted answer for prompt %q", prompt)
	}
	choice := s.Choices[s.askIdx]
	s.askIdx++
	if choice < 0 || choice >= len(options) {
		return 0, fmt.Errorf("scripted answer %d out of range for prompt %q", choice, prompt)
	}
	return choice, nil
}

// Confirm returns the next scripted confirmation
func (s *ScriptedAsker) Confirm(prompt string, def bool) (bool, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.confirmIdx >= len(s.Confirms) {
		return def, nil
	}
	answer := s.Confirms[s.confirmIdx]
	s.confirmIdx++
	return answer, nil
}
