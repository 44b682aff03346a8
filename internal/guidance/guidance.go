// Package guidance splices the manual precipitation-discipline reminder
// into installed skill documents for platforms without a session-end hook.
package guidance

import (
	"fmt"
	"os"
	"strings"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
)

const (
	// StartHeading marks the start of the body inside a guidance fragment.
	StartHeading = "Precipitation Discipline"

	// SectionHeading marks the section the body is appended to.
	SectionHeading = "Your Responsibilities"

	headingPrefix = "## "
	rulePrefix    = "---"
)

// Outcome reports what Inject did. Only Injected changes the document.
type Outcome int

const (
	Injected Outcome = iota
	SkippedNoMarker
	SkippedEmptyBody
	SkippedAlreadyPresent
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Injected:
		return "injected"
	case SkippedNoMarker:
		return "skipped: no responsibilities section"
	case SkippedEmptyBody:
		return "skipped: empty guidance"
	case SkippedAlreadyPresent:
		return "skipped: already present"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Extract returns the guidance body from a fragment file's content.
//
// Everything before the first second-level heading is preamble. The body
// starts at the heading containing StartHeading, or at the first
// second-level heading when none does, and runs to the next second-level
// heading or the end of the fragment.
func Extract(fragment string) string {
	lines := splitLines(fragment)

	start := -1
	for i, line := range lines {
		if !isHeading(line) {
			continue
		}
		if start < 0 {
			start = i
		}
		if strings.Contains(line, StartHeading) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isHeading(lines[i]) {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// Inject splices body into doc at the end of the responsibilities section
// and returns the new document. The section ends at the next line starting
// with a second-level heading or a horizontal rule, or at the end of doc.
// doc is returned unchanged for every outcome except Injected.
func Inject(doc, body string) (string, Outcome) {
	body = strings.TrimSpace(body)
	if body == "" {
		return doc, SkippedEmptyBody
	}

	lines := splitLines(doc)

	marker := -1
	for i, line := range lines {
		if isHeading(line) && strings.Contains(line, SectionHeading) {
			marker = i
			break
		}
	}
	if marker < 0 {
		return doc, SkippedNoMarker
	}

	if first := firstLine(body); containsLine(lines, first) {
		return doc, SkippedAlreadyPresent
	}

	end := len(lines)
	for i := marker + 1; i < len(lines); i++ {
		if isHeading(lines[i]) || strings.HasPrefix(lines[i], rulePrefix) {
			end = i
			break
		}
	}

	before := strings.TrimRight(strings.Join(lines[:end], "\n"), "\n")
	if end == len(lines) {
		return before + "\n\n" + body + "\n", Injected
	}
	after := strings.Join(lines[end:], "\n")
	return before + "\n\n" + body + "\n\n" + after, Injected
}

// InjectFile injects the body of the fragment at fragmentPath into the
// document at docPath, rewriting it in place when the outcome is Injected.
func InjectFile(docPath, fragmentPath string) (Outcome, error) {
	fragment, err := os.ReadFile(fragmentPath)
	if os.IsNotExist(err) {
		return SkippedEmptyBody, serrors.IOFileNotFound(fragmentPath).WithCause(err)
	}
	if err != nil {
		return SkippedEmptyBody, fmt.Errorf("reading guidance fragment: %w", err)
	}

	info, err := os.Stat(docPath)
	if err != nil {
		return SkippedNoMarker, fmt.Errorf("reading skill document: %w", err)
	}
	doc, err := os.ReadFile(docPath)
	if err != nil {
		return SkippedNoMarker, fmt.Errorf("reading skill document: %w", err)
	}

	updated, outcome := Inject(string(doc), Extract(string(fragment)))
	if outcome != Injected {
		return outcome, nil
	}

	if err := os.WriteFile(docPath, []byte(updated), info.Mode().Perm()); err != nil {
		return outcome, fmt.Errorf("writing skill document: %w", err)
	}
	return outcome, nil
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, headingPrefix)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}
