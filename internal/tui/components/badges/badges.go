package badges

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/tracker"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	rarityColors = map[models.Rarity]lipgloss.Color{
		models.RarityCommon:    lipgloss.Color("250"),
		models.RarityRare:      lipgloss.Color("39"),
		models.RarityEpic:      lipgloss.Color("135"),
		models.RarityLegendary: lipgloss.Color("214"),
	}
)

// RarityStyle colors text by badge rarity
func RarityStyle(r models.Rarity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(rarityColors[r])
}

type Model struct {
	viewport viewport.Model
	profile  tracker.Profile
}

func New(p tracker.Profile, width, height int) Model {
	m := Model{viewport: viewport.New(width, height)}
	m.SetProfile(p)
	return m
}

func (m *Model) SetProfile(p tracker.Profile) {
	m.profile = p
	m.viewport.SetContent(render(p))
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func render(p tracker.Profile) string {
	var b strings.Builder

	lvl := p.Level
	header := fmt.Sprintf("Level %d · %s · %d pts", lvl.Level, lvl.Title, p.Points)
	if !lvl.IsMax {
		header += fmt.Sprintf(" (next at %d)", lvl.NextLevelPoints)
	}
	b.WriteString(headerStyle.Render(header) + "\n\n")

	b.WriteString(fmt.Sprintf("Earned (%d)\n", len(p.Earned)))
	if len(p.Earned) == 0 {
		b.WriteString(lockedStyle.Render("  none yet") + "\n")
	}
	for _, badge := range p.Earned {
		line := fmt.Sprintf("  %s %s  +%d", badge.Icon, badge.Name, badge.Points)
		b.WriteString(RarityStyle(badge.Rarity).Render(line) + "\n")
	}

	b.WriteString(fmt.Sprintf("\nLocked (%d)\n", len(p.Locked)))
	for _, lb := range p.Locked {
		line := fmt.Sprintf("  %s %-22s %3.0f%%  %s", lb.Badge.Icon, lb.Badge.Name, lb.Progress, lb.Badge.Description)
		b.WriteString(lockedStyle.Render(line) + "\n")
	}
	return b.String()
}
