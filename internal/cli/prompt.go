// Package cli holds the interactive prompts used when the installer runs
// on a terminal without --yes.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks questions on Out and reads answers from In.
type Prompter struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{out: out, reader: bufio.NewReader(in)}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks a yes/no question with the given default.
// Returns true for yes, false for no.
func (p *Prompter) Confirm(prompt string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	fmt.Fprintf(p.out, "%s %s ", prompt, suffix)

	response, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// SelectOption represents an option in a selection list.
type SelectOption struct {
	Value string // The value to return if selected
	Label string // The display label
}

// Select displays a numbered list and asks the user to select an option.
// An empty answer picks the first option. Returns the selected option's
// Value, or empty string if cancelled.
func (p *Prompter) Select(prompt string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	fmt.Fprintln(p.out, prompt)
	fmt.Fprintln(p.out)

	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt.Label)
	}

	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, "Enter number (default 1, 'q' to cancel): ")

	response, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	switch response {
	case "":
		return options[0].Value, nil
	case "q", "quit", "cancel":
		return "", nil
	}

	num, err := strconv.Atoi(response)
	if err != nil || num < 1 || num > len(options) {
		return "", fmt.Errorf("invalid selection: %s", response)
	}

	return options[num-1].Value, nil
}
