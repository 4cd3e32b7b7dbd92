// Package tui shows live per-linter progress while an aggregation runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/runner"
)

type toolState int

const (
	toolWaiting toolState = iota
	toolRunning
	toolDone
	toolFailed
)

type row struct {
	name   string
	state  toolState
	issues int
	ms     int64
	err    string
}

type startedMsg struct{ name string }

type finishedMsg struct {
	run    model.ToolRun
	issues int
}

type doneMsg struct{}

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✗")
	waitMark = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("○")
	dimText  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type board struct {
	spin  spinner.Model
	rows  []row
	index map[string]int
	done  bool
}

func newBoard(tools []string) board {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	rows := make([]row, len(tools))
	index := make(map[string]int, len(tools))
	for i, name := range tools {
		rows[i] = row{name: name}
		index[name] = i
	}
	return board{spin: s, rows: rows, index: index}
}

func (b board) Init() tea.Cmd { return b.spin.Tick }

func (b board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		}

	case startedMsg:
		if i, ok := b.index[msg.name]; ok {
			b.rows[i].state = toolRunning
		}

	case finishedMsg:
		if i, ok := b.index[msg.run.Name]; ok {
			r := &b.rows[i]
			r.ms = msg.run.DurationMS
			r.issues = msg.issues
			if msg.run.Success {
				r.state = toolDone
			} else {
				r.state = toolFailed
				r.err = msg.run.Error
			}
		}

	case doneMsg:
		b.done = true
		return b, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b board) View() string {
	if b.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("running linters\n\n")

	finished := 0
	for _, r := range b.rows {
		switch r.state {
		case toolRunning:
			fmt.Fprintf(&sb, "  %s %-8s\n", b.spin.View(), r.name)
		case toolDone:
			finished++
			fmt.Fprintf(&sb, "  %s %-8s %s\n", okMark, r.name,
				dimText.Render(fmt.Sprintf("%d issues in %dms", r.issues, r.ms)))
		case toolFailed:
			finished++
			fmt.Fprintf(&sb, "  %s %-8s %s\n", failMark, r.name, dimText.Render(r.err))
		default:
			fmt.Fprintf(&sb, "  %s %-8s\n", waitMark, r.name)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n", dimText.Render(fmt.Sprintf("%d/%d finished · q to hide", finished, len(b.rows))))
	return sb.String()
}

// Run executes fn behind a progress board and returns its report. Quitting
// the board early hides it; the aggregation still runs to completion.
func Run(tools []string, fn func(runner.Hooks) *model.Report) (*model.Report, error) {
	p := tea.NewProgram(newBoard(tools))

	reports := make(chan *model.Report, 1)
	go func() {
		rep := fn(runner.Hooks{
			ToolStarted: func(name string) {
				p.Send(startedMsg{name: name})
			},
			ToolFinished: func(run model.ToolRun, issues int) {
				p.Send(finishedMsg{run: run, issues: issues})
			},
		})
		reports <- rep
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return <-reports, nil
}
