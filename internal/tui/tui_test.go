package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/storage"
	"github.com/ratedzzz/small-steps/internal/tracker"
	"github.com/ratedzzz/small-steps/internal/tui/components/habits"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func setupModel(t *testing.T, titles ...string) (Model, *tracker.Service, func()) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	var seq int
	svc, err := tracker.New(store, tracker.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Notifier: notifier.Nop{},
	})
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	for _, title := range titles {
		if _, _, err := svc.AddHabit(models.Habit{Title: title}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}

	m := NewModel(svc)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), svc, func() { store.Close() }
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	want := []constants.SessionState{constants.StateGoals, constants.StateBadges, constants.StateToday}
	for i, w := range want {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Errorf("after %d tabs: state = %d, want %d", i+1, m.state, w)
		}
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateBadges {
		t.Errorf("after shift+tab: state = %d, want %d", m.state, constants.StateBadges)
	}
}

func TestMarkKeyCompletesSelectedHabit(t *testing.T) {
	m, svc, cleanup := setupModel(t, "Read")
	defer cleanup()

	_, cmd := send(m, runes("m"))
	if cmd == nil {
		t.Fatal("expected a command from the mark key")
	}
	msg, ok := cmd().(habits.CompleteHabitMsg)
	if !ok || msg.ID != "id-1" {
		t.Fatalf("expected CompleteHabitMsg for id-1, got %#v", msg)
	}

	m, _ = send(m, msg)
	entry, ok := svc.Ledger().GetProgress("id-1", "2024-03-15")
	if !ok || !entry.Completed {
		t.Fatalf("expected completed entry, got %+v (ok=%v)", entry, ok)
	}
	if !strings.Contains(m.status, "First Step") {
		t.Errorf("status = %q, want it to announce First Step", m.status)
	}
	if m.statusErr {
		t.Error("status should not be an error")
	}
}

func TestResetHabit(t *testing.T) {
	m, svc, cleanup := setupModel(t, "Read")
	defer cleanup()

	m, _ = send(m, habits.CompleteHabitMsg{ID: "id-1"})
	m, _ = send(m, habits.ResetHabitMsg{ID: "id-1"})

	entry, _ := svc.Ledger().GetProgress("id-1", "2024-03-15")
	if entry.Completed || entry.CompletionPercentage != 0 {
		t.Errorf("expected reset entry, got %+v", entry)
	}
	if len(m.dashboard.Habits) != 1 || m.dashboard.Habits[0].Entry.Completed {
		t.Error("dashboard should reflect the reset")
	}
}

func TestAddHabitFormEscape(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	m, _ = send(m, habits.AddHabitMsg{})
	if m.state != constants.StateAddHabit {
		t.Fatalf("state = %d, want %d", m.state, constants.StateAddHabit)
	}
	if m.habitForm.Category != constants.DefaultCategory {
		t.Errorf("category = %q, want %q", m.habitForm.Category, constants.DefaultCategory)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateToday {
		t.Errorf("state after esc = %d, want %d", m.state, constants.StateToday)
	}
}

func TestJournalFormPrefill(t *testing.T) {
	m, svc, cleanup := setupModel(t, "Read")
	defer cleanup()

	points, mood := 7, 4
	if _, _, err := svc.RecordJournal("id-1", "2024-03-15", "good day", &points, &mood); err != nil {
		t.Fatalf("failed to record journal: %v", err)
	}

	m, _ = send(m, habits.JournalHabitMsg{ID: "id-1"})
	if m.state != constants.StateJournal {
		t.Fatalf("state = %d, want %d", m.state, constants.StateJournal)
	}
	if m.journalForm.Text != "good day" || m.journalForm.Points != "7" || m.journalForm.Mood != 4 {
		t.Errorf("unexpected prefill: %+v", m.journalForm)
	}
}

func TestUnknownHabitShowsError(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	m, _ = send(m, habits.DeactivateHabitMsg{ID: "missing"})
	if !m.statusErr || !strings.Contains(m.status, "habit not found") {
		t.Errorf("status = %q (err=%v), want habit not found error", m.status, m.statusErr)
	}
}

func TestViewShowsHabitsAndQuote(t *testing.T) {
	m, _, cleanup := setupModel(t, "Read")
	defer cleanup()

	view := m.View()
	for _, want := range []string{"Today", "Read", "2024-03-15", m.dashboard.Quote.Author} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestValidatePoints(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"10", false},
		{"11", true},
		{"-1", true},
		{"abc", true},
	}
	for _, tt := range tests {
		if err := validatePoints(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validatePoints(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
