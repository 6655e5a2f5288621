package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit:
		return m, m.updateAddHabit(msg)
	case constants.StateJournal:
		return m, m.updateJournal(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.habitsModel.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateBadges:
		m.badgesModel, cmd = m.badgesModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	today := m.svc.TodayKey()

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Category: constants.DefaultCategory}
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case habits.CompleteHabitMsg:
		_, unlocked, err := m.svc.RecordProgress(msg.ID, today, constants.MaxPercentage, "")
		if err != nil {
			m.setError(err)
			return true, nil
		}
		m.announce("Marked done", unlocked)
		m.refresh()
		return true, nil

	case habits.ResetHabitMsg:
		entry, _ := m.svc.Ledger().GetProgress(msg.ID, today)
		_, unlocked, err := m.svc.RecordProgress(msg.ID, today, 0, entry.Notes)
		if err != nil {
			m.setError(err)
			return true, nil
		}
		m.announce("Reset to 0%", unlocked)
		m.refresh()
		return true, nil

	case habits.JournalHabitMsg:
		h, err := m.svc.Ledger().Habit(msg.ID)
		if err != nil {
			m.setError(err)
			return true, nil
		}
		entry, _ := m.svc.Ledger().GetProgress(msg.ID, today)
		m.journalForm = &JournalFormModel{Text: entry.JournalEntry, Mood: entry.MoodValue()}
		if entry.Points != nil {
			m.journalForm.Points = strconv.Itoa(entry.PointValue())
		}
		m.journalHabitID = msg.ID
		m.form = NewJournalForm(m.journalForm, h.Title)
		m.state = constants.StateJournal
		return true, m.form.Init()

	case habits.DeactivateHabitMsg:
		h, err := m.svc.DeactivateHabit(msg.ID)
		if err != nil {
			m.setError(err)
			return true, nil
		}
		m.announce("Deactivated "+h.Title, nil)
		m.refresh()
		return true, nil
	}
	return false, nil
}

// updateForm forwards msg to the active form. It reports the form's state
// after the update; Esc aborts.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		h, unlocked, err := m.svc.AddHabit(models.Habit{
			Title:       m.habitForm.Title,
			Description: m.habitForm.Description,
			Category:    m.habitForm.Category,
		})
		m.state = constants.StateToday
		if err != nil {
			m.setError(err)
			return nil
		}
		m.announce("Added "+h.Title, unlocked)
		m.refresh()
		return nil
	case huh.StateAborted:
		m.state = constants.StateToday
		return nil
	}
	return cmd
}

func (m *Model) updateJournal(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		mood := m.journalForm.Mood
		_, unlocked, err := m.svc.RecordJournal(m.journalHabitID, m.svc.TodayKey(), m.journalForm.Text, m.journalForm.points(), &mood)
		m.state = constants.StateToday
		if err != nil {
			m.setError(err)
			return nil
		}
		m.announce("Journal saved", unlocked)
		m.refresh()
		return nil
	case huh.StateAborted:
		m.state = constants.StateToday
		return nil
	}
	return cmd
}
