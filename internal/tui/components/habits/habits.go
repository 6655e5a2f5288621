package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratedzzz/small-steps/internal/scoring"
	"github.com/ratedzzz/small-steps/internal/tracker"
)

type AddHabitMsg struct{}

type CompleteHabitMsg struct {
	ID string
}

type ResetHabitMsg struct {
	ID string
}

type JournalHabitMsg struct {
	ID string
}

type DeactivateHabitMsg struct {
	ID string
}

type Item struct {
	Day tracker.HabitDay
}

func (i Item) Title() string {
	pct := i.Day.Entry.Percentage()
	switch {
	case pct >= 100:
		return "✓ " + i.Day.Habit.Title
	case scoring.Qualifies(pct):
		return "◑ " + i.Day.Habit.Title
	case pct > 0:
		return "◔ " + i.Day.Habit.Title
	}
	return "○ " + i.Day.Habit.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s · %d%% today", i.Day.Habit.Category, i.Day.Entry.Percentage())
	if i.Day.Streak > 0 {
		desc += fmt.Sprintf(" · 🔥 %d", i.Day.Streak)
	}
	if i.Day.Entry.HasJournal() {
		desc += " · ✎"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Day.Habit.Title }

type KeyMap struct {
	Add        key.Binding
	Complete   key.Binding
	Reset      key.Binding
	Journal    key.Binding
	Deactivate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "mark done"),
		),
		Reset: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "reset"),
		),
		Journal: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "journal"),
		),
		Deactivate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "deactivate"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(days []tracker.HabitDay, width, height int) Model {
	l := list.New(items(days), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Reset, keys.Journal, keys.Deactivate}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{
		list: l,
		keys: keys,
	}
}

func items(days []tracker.HabitDay) []list.Item {
	out := make([]list.Item, len(days))
	for i, d := range days {
		out[i] = Item{Day: d}
	}
	return out
}

func (m *Model) SetHabits(days []tracker.HabitDay) {
	m.list.SetItems(items(days))
}

// Filtering reports whether the list is capturing keystrokes for its filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		i, ok := m.list.SelectedItem().(Item)
		if !ok {
			break
		}
		id := i.Day.Habit.ID
		switch {
		case key.Matches(msg, m.keys.Complete):
			if i.Day.Entry.Percentage() < 100 {
				return m, func() tea.Msg { return CompleteHabitMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Reset):
			if i.Day.Logged {
				return m, func() tea.Msg { return ResetHabitMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Journal):
			return m, func() tea.Msg { return JournalHabitMsg{ID: id} }
		case key.Matches(msg, m.keys.Deactivate):
			return m, func() tea.Msg { return DeactivateHabitMsg{ID: id} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
