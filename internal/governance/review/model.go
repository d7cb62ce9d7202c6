// Package review is the interactive diff-review TUI (SPEC_FULL.md §4
// supplemented feature 3): a severity-colored walkthrough of a
// ContractDiffResult a human steps through before approving lockfile
// regeneration. Adapted from the teacher's internal/tui package, scaled
// down from a polling multi-tab dashboard to a single static list over
// one already-computed diff.Result (there is nothing to refresh: the
// diff was already run before the TUI launches).
package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/diff"
)

// Decision is the human's outcome after walking through a diff.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// model is the Bubble Tea model for one tool's diff walkthrough.
type model struct {
	result   diff.Result
	cursor   int
	decision Decision
	quitting bool
}

// New builds a review model over a single tool's diff result.
func New(result diff.Result) tea.Model {
	return model{result: result, decision: DecisionPending}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.result.Deltas)-1 {
			m.cursor++
		}
		return m, nil

	case "y":
		m.decision = DecisionApproved
		m.quitting = true
		return m, tea.Quit

	case "n":
		m.decision = DecisionRejected
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b []byte
	b = append(b, titleStyle.Render(fmt.Sprintf("contract diff: %s", m.result.ToolName))+"\n\n"...)
	b = append(b, fmt.Sprintf("%d delta(s), max severity %s, backwards-compatible: %t\n\n",
		len(m.result.Deltas), m.result.MaxSeverity, m.result.IsBackwardsCompatible)...)

	if len(m.result.Deltas) == 0 {
		b = append(b, mutedStyle.Render("no changes detected")+"\n"...)
	}

	for i, delta := range m.result.Deltas {
		line := fmt.Sprintf("[%s] %s: %s", delta.Severity, delta.Category, delta.Description)
		style := severityStyle(delta.Severity)
		if i == m.cursor {
			line = "> " + line
			style = selectedStyle
		} else {
			line = "  " + line
		}
		b = append(b, style.Render(line)+"\n"...)
	}

	b = append(b, "\n"...)
	b = append(b, helpStyle.Render("↑/↓ navigate · y approve · n reject · q quit")+"\n"...)

	return string(b)
}

// FinalDecision returns the human's outcome after the program exits.
func FinalDecision(m tea.Model) Decision {
	rm, ok := m.(model)
	if !ok {
		return DecisionPending
	}
	return rm.decision
}
