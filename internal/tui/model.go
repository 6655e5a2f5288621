package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/tracker"
	"github.com/ratedzzz/small-steps/internal/tui/components/badges"
	"github.com/ratedzzz/small-steps/internal/tui/components/goals"
	"github.com/ratedzzz/small-steps/internal/tui/components/habits"
)

// tabCount is the number of tab states at the start of SessionState
const tabCount = 3

var tabTitles = []string{"Today", "Goals", "Badges"}

type Model struct {
	svc            *tracker.Service
	state          constants.SessionState
	keys           KeyMap
	help           help.Model
	habitsModel    habits.Model
	goalsModel     goals.Model
	badgesModel    badges.Model
	form           *huh.Form
	habitForm      *HabitFormModel
	journalForm    *JournalFormModel
	journalHabitID string
	dashboard      tracker.Dashboard
	status         string
	statusErr      bool
	quitting       bool
	width          int
	height         int
}

func NewModel(svc *tracker.Service) Model {
	m := Model{
		svc:         svc,
		state:       constants.StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, 0, 0),
		goalsModel:  goals.New(nil, 0, 0),
		badgesModel: badges.New(tracker.Profile{}, 0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every tab from the tracker
func (m *Model) refresh() {
	m.dashboard = m.svc.Dashboard(m.svc.Today())
	m.habitsModel.SetHabits(m.dashboard.Habits)
	m.goalsModel.SetGoals(m.dashboard.Goals)

	profile, err := m.svc.Profile()
	if err != nil {
		m.setError(err)
		return
	}
	m.badgesModel.SetProfile(profile)
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = err.Error()
	m.statusErr = true
}

// announce reports the outcome of a write, favoring any unlocked badges
func (m *Model) announce(done string, unlocked []models.Badge) {
	m.statusErr = false
	if len(unlocked) == 0 {
		m.status = done
		return
	}
	names := make([]string, len(unlocked))
	for i, b := range unlocked {
		names[i] = fmt.Sprintf("%s %s", b.Icon, b.Name)
	}
	m.status = "Badge unlocked: " + strings.Join(names, ", ")
}

func (m *Model) resize() {
	// tabs, status line and help bar
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	m.habitsModel.SetSize(w, h)
	m.goalsModel.SetSize(w, h)
	m.badgesModel.SetSize(w, h)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateToday {
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Complete, hk.Journal)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == constants.StateToday {
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Complete, hk.Reset, hk.Journal, hk.Deactivate}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
