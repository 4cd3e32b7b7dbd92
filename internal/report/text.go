package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/util"
)

var (
	styleFile    = lipgloss.NewStyle().Bold(true).Underline(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold    = lipgloss.NewStyle().Bold(true)
)

// Text renders a report as human-readable terminal output, grouped by file.
type Text struct {
	w     io.Writer
	color bool
	load  func(path string) (string, bool)
}

// NewText builds a renderer for w, enabling color only when w is a terminal.
func NewText(w io.Writer) *Text {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Text{w: w, color: color}
}

// WithColor overrides terminal detection.
func (t *Text) WithColor(on bool) *Text {
	t.color = on
	return t
}

// WithSource prints each issue's offending source line, fetched through load.
// A load miss skips the preview for that issue.
func (t *Text) WithSource(load func(path string) (string, bool)) *Text {
	t.load = load
	return t
}

func (t *Text) render(s lipgloss.Style, text string) string {
	if !t.color {
		return text
	}
	return s.Render(text)
}

func (t *Text) severityLabel(sev model.Severity, width int) string {
	label := fmt.Sprintf("%-*s", width, string(sev))
	switch sev {
	case model.SeverityError:
		return t.render(styleError, label)
	case model.SeverityWarning:
		return t.render(styleWarning, label)
	default:
		return t.render(styleInfo, label)
	}
}

// Render writes the issues grouped per file, then tool failures, then a
// one-line summary.
func (t *Text) Render(rep *model.Report) error {
	var b strings.Builder

	posWidth, sevWidth := 0, 0
	for _, is := range rep.Issues {
		if w := len(fmt.Sprintf("%d:%d", is.Line, is.Column)); w > posWidth {
			posWidth = w
		}
		if w := len(string(is.Severity)); w > sevWidth {
			sevWidth = w
		}
	}

	lastPath := ""
	for _, is := range rep.Issues {
		if is.Path != lastPath {
			if lastPath != "" {
				b.WriteByte('\n')
			}
			b.WriteString(t.render(styleFile, is.Path))
			b.WriteByte('\n')
			lastPath = is.Path
		}
		pos := fmt.Sprintf("%-*s", posWidth, fmt.Sprintf("%d:%d", is.Line, is.Column))
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			t.render(styleMuted, pos),
			t.severityLabel(is.Severity, sevWidth),
			is.Message,
			t.render(styleMuted, is.Rule))
		if t.load != nil {
			if content, ok := t.load(is.Path); ok {
				for _, line := range util.Snippet(content, is.Line, 0) {
					fmt.Fprintf(&b, "  %*s  %s\n", posWidth, "",
						t.render(styleMuted, "│ "+strings.TrimRight(line, " \t\r")))
				}
			}
		}
	}
	if len(rep.Issues) > 0 {
		b.WriteByte('\n')
	}

	for _, run := range rep.Linters {
		if run.Success {
			continue
		}
		fmt.Fprintf(&b, "%s %s failed: %s\n",
			t.render(styleError, "✗"), run.Name, run.Error)
	}

	b.WriteString(t.summaryLine(rep))
	b.WriteByte('\n')

	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) summaryLine(rep *model.Report) string {
	s := rep.Summary
	if s.Total == 0 {
		return t.render(styleBold, fmt.Sprintf("✓ no issues (%d linters, %dms)",
			len(rep.Linters), rep.DurationMS))
	}

	parts := []string{
		fmt.Sprintf("%d %s", s.Errors, plural(s.Errors, "error")),
		fmt.Sprintf("%d %s", s.Warnings, plural(s.Warnings, "warning")),
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	line := fmt.Sprintf("✖ %d %s (%s)", s.Total, plural(s.Total, "problem"), strings.Join(parts, ", "))
	if s.Fixable > 0 {
		line += fmt.Sprintf("\n  %d fixable with --fix", s.Fixable)
	}
	return t.render(styleBold, line)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
