package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/storage"
	"github.com/ratedzzz/small-steps/internal/tracker"
)

func setupContext(t *testing.T) (*Context, *tracker.Service, func()) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	settings := config.DefaultConfig()
	settings.General.Timezone = "UTC"
	ctx := &Context{
		Store:    store,
		Settings: settings,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) },
		Notifier: notifier.Nop{},
	}
	svc, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	return ctx, svc, func() { store.Close() }
}

func TestTrackerIsCached(t *testing.T) {
	ctx, svc, cleanup := setupContext(t)
	defer cleanup()

	again, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("Tracker() failed: %v", err)
	}
	if again != svc {
		t.Error("expected the same service on second call")
	}
}

func TestResolveDate(t *testing.T) {
	_, svc, cleanup := setupContext(t)
	defer cleanup()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2024-03-15", false},
		{"today", "2024-03-15", false},
		{"Yesterday", "2024-03-14", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"15/03/2024", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveDate(svc, tt.in)
		if tt.wantErr {
			if !errors.Is(err, ledger.ErrInvalidDate) {
				t.Errorf("ResolveDate(%q) error = %v, want ErrInvalidDate", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ResolveDate(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFindHabit(t *testing.T) {
	_, svc, cleanup := setupContext(t)
	defer cleanup()

	old, _, err := svc.AddHabit(models.Habit{Title: "Read"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, err := svc.DeactivateHabit(old.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	current, _, err := svc.AddHabit(models.Habit{Title: "read"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	got, err := FindHabit(svc, "READ")
	if err != nil {
		t.Fatalf("FindHabit by title failed: %v", err)
	}
	if got.ID != current.ID {
		t.Errorf("expected active habit %s, got %s", current.ID, got.ID)
	}

	got, err = FindHabit(svc, old.ID)
	if err != nil || got.ID != old.ID {
		t.Errorf("FindHabit by ID = %v, %v", got.ID, err)
	}

	if _, err := FindHabit(svc, "missing"); !errors.Is(err, ledger.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestFindGoal(t *testing.T) {
	_, svc, cleanup := setupContext(t)
	defer cleanup()

	g, err := svc.AddGoal(models.Goal{Title: "Fitness"})
	if err != nil {
		t.Fatalf("failed to add goal: %v", err)
	}
	for _, ref := range []string{g.ID, "fitness"} {
		got, err := FindGoal(svc, ref)
		if err != nil || got.ID != g.ID {
			t.Errorf("FindGoal(%q) = %v, %v", ref, got.ID, err)
		}
	}
	if _, err := FindGoal(svc, fmt.Sprintf("nope-%d", 1)); !errors.Is(err, ledger.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}
