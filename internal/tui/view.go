package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ratedzzz/small-steps/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case constants.StateBadges:
		content = docStyle.Render(m.badgesModel.View())
	case constants.StateAddHabit, constants.StateJournal:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(m.dashboard.Date))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	q := m.dashboard.Quote
	quote := ""
	if q.Text != "" {
		quote = quoteStyle.Render(fmt.Sprintf("“%s” ~ %s", q.Text, q.Author))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, quote, "", m.habitsModel.View()))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("  " + m.status)
	}
	return successStyle.Render("  " + m.status)
}
