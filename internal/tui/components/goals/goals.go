package goals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ratedzzz/small-steps/internal/tracker"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	goals  []tracker.GoalStatus
	width  int
	height int
}

func New(goals []tracker.GoalStatus, width, height int) Model {
	return Model{goals: goals, width: width, height: height}
}

func (m *Model) SetGoals(goals []tracker.GoalStatus) {
	m.goals = goals
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Bar renders a pct-wide progress bar of width cells
func Bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return fillStyle.Render(strings.Repeat("█", filled)) + emptyStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) View() string {
	if len(m.goals) == 0 {
		return "\n  No goals yet.\n  Create one with 'smallsteps goal add'."
	}

	var b strings.Builder
	for _, g := range m.goals {
		title := titleStyle.Render(g.Goal.Title)
		if g.Completed {
			title += " " + doneStyle.Render("✓ achieved")
		}
		b.WriteString(title + "\n")
		b.WriteString(fmt.Sprintf("  %s %3d%%\n", Bar(g.Progress, barWidth), g.Progress))

		var details []string
		details = append(details, fmt.Sprintf("%d linked habit(s)", len(g.Habits)))
		if g.Goal.TargetValue != nil {
			current := 0.0
			if g.Goal.CurrentValue != nil {
				current = *g.Goal.CurrentValue
			}
			details = append(details, fmt.Sprintf("%g/%g %s", current, *g.Goal.TargetValue, g.Goal.Unit))
		}
		if g.Goal.Deadline != "" {
			details = append(details, "due "+g.Goal.Deadline)
		}
		b.WriteString("  " + mutedStyle.Render(strings.Join(details, " · ")) + "\n\n")
	}
	return b.String()
}
