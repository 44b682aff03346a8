// Package ui renders the installer's terminal output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorPrimary = lipgloss.Color("#FF5FD7")
	colorSuccess = lipgloss.Color("#4CAF50")
	colorError   = lipgloss.Color("#FF6B6B")
	colorWarning = lipgloss.Color("#F7B801")
	colorDim     = lipgloss.Color("#888888")
)

// Section is one block of lines inside a Box.
type Section struct {
	Heading string
	Items   []string

	// Numbered prefixes items with 1., 2., ... instead of bullets.
	Numbered bool
}

type styles struct {
	primary lipgloss.Style
	success lipgloss.Style
	error   lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
	bold    lipgloss.Style
	box     lipgloss.Style
}

// Printer writes styled messages to an output stream.
type Printer struct {
	out io.Writer
	st  styles
}

// New creates a Printer writing to out. Color is decided by out's
// terminal capabilities unless noColor is set.
func New(out io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)

	st := styles{
		primary: r.NewStyle().Foreground(colorPrimary),
		success: r.NewStyle().Foreground(colorSuccess),
		error:   r.NewStyle().Foreground(colorError),
		warning: r.NewStyle().Foreground(colorWarning),
		dim:     r.NewStyle().Foreground(colorDim),
		bold:    r.NewStyle().Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2).
			Margin(1, 0),
	}
	if noColor {
		plain := r.NewStyle()
		st = styles{
			primary: plain,
			success: plain,
			error:   plain,
			warning: plain,
			dim:     plain,
			bold:    plain,
			box:     plain.Border(lipgloss.RoundedBorder()).Padding(1, 2).Margin(1, 0),
		}
	}

	return &Printer{out: out, st: st}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.out, s)
}

// Banner prints the product title and version.
func (p *Printer) Banner(version string) {
	p.Newline()
	p.println(p.st.primary.Bold(true).Render("DISCUSS FOR SPECS"))
	p.println(p.st.dim.Render("Skills Installer " + version))
	p.Newline()
}

// Newline prints a blank line.
func (p *Printer) Newline() {
	p.println("")
}

// Heading prints a bold section title preceded by a blank line.
func (p *Printer) Heading(title string) {
	p.Newline()
	p.println(p.st.bold.Render(title))
}

// Success prints a checked line.
func (p *Printer) Success(msg string) {
	p.println(p.st.success.Render("✔") + " " + msg)
}

// Item prints an indented checked line.
func (p *Printer) Item(msg string) {
	p.println("  " + p.st.success.Render("✔") + " " + msg)
}

// Info prints a progress line.
func (p *Printer) Info(msg string) {
	p.println(p.st.primary.Render("→ " + msg))
}

// Warning prints a warning line.
func (p *Printer) Warning(msg string) {
	p.println(p.st.warning.Render("⚠") + " " + msg)
}

// Detail prints an indented dim line.
func (p *Printer) Detail(msg string) {
	p.println(p.st.dim.Render("  " + msg))
}

// Error prints an error with an optional multi-line fix hint.
func (p *Printer) Error(msg, hint string) {
	p.Newline()
	p.println(p.st.error.Render("✖") + " " + p.st.bold.Render(msg))
	if hint != "" {
		p.Newline()
		p.println(p.st.dim.Render("  To fix:"))
		for _, line := range strings.Split(hint, "\n") {
			p.println(p.st.primary.Render("    " + line))
		}
	}
	p.Newline()
}

// Box prints title and sections inside a rounded border.
func (p *Printer) Box(title string, sections ...Section) {
	lines := []string{p.st.success.Render("✅") + " " + p.st.bold.Render(title)}

	for _, s := range sections {
		if s.Heading == "" && len(s.Items) == 0 {
			continue
		}
		lines = append(lines, "")
		if s.Heading != "" {
			lines = append(lines, s.Heading)
		}
		for i, item := range s.Items {
			bullet := "•"
			if s.Numbered {
				bullet = fmt.Sprintf("%d.", i+1)
			}
			lines = append(lines, "  "+p.st.dim.Render(bullet)+" "+item)
		}
	}

	p.println(p.st.box.Render(strings.Join(lines, "\n")))
}

// Note prints dim text, one line per line of msg.
func (p *Printer) Note(msg string) {
	for _, line := range strings.Split(msg, "\n") {
		p.println(p.st.dim.Render(line))
	}
}
