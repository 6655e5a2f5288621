package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/storage"
	"github.com/ratedzzz/small-steps/internal/subscription"
)

func setupTestContext(t *testing.T) (*cli.Context, func()) {
	store := storage.NewSQLiteStore(t.TempDir() + "/test.db")
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	settings := config.DefaultConfig()
	settings.General.Timezone = "UTC"
	ctx := &cli.Context{
		Store:    store,
		Settings: settings,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) },
		Notifier: notifier.Nop{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func TestHabitAddAndProgress(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	add := &HabitAddCmd{Title: "Morning run", Category: "Health & Fitness"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	for _, date := range []string{"2024-03-13", "yesterday", "today"} {
		cmd := &ProgressSetCmd{Habit: "morning run", Percentage: 100, Date: date}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("progress set %s failed: %v", date, err)
		}
	}

	svc, _ := ctx.Tracker()
	h, err := cli.FindHabit(svc, "Morning run")
	if err != nil {
		t.Fatalf("habit not found: %v", err)
	}
	streak, err := svc.Streak(h.ID)
	if err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}

	earned, err := svc.EarnedBadges()
	if err != nil {
		t.Fatalf("earned badges failed: %v", err)
	}
	if len(earned) == 0 {
		t.Error("expected first_step to be earned")
	}

	if err := (&ProgressGetCmd{Habit: h.ID, Date: "today"}).Run(ctx); err != nil {
		t.Errorf("progress get failed: %v", err)
	}
	if err := (&HabitStatsCmd{Habit: h.ID}).Run(ctx); err != nil {
		t.Errorf("habit stats failed: %v", err)
	}
	if err := (&HabitLogCmd{Days: 7}).Run(ctx); err != nil {
		t.Errorf("habit log failed: %v", err)
	}
	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Errorf("streak failed: %v", err)
	}
}

func TestProgressSetErrors(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Title: "Read", Category: "General"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	err := (&ProgressSetCmd{Habit: "missing", Percentage: 100, Date: "today"}).Run(ctx)
	if !errors.Is(err, ledger.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}

	err = (&ProgressSetCmd{Habit: "Read", Percentage: 100, Date: "2024-3-1"}).Run(ctx)
	if !errors.Is(err, ledger.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	// free plan keeps a 7 day window
	err = (&ProgressSetCmd{Habit: "Read", Percentage: 100, Date: "2024-02-01"}).Run(ctx)
	if !errors.Is(err, subscription.ErrHistoryLocked) {
		t.Errorf("expected ErrHistoryLocked, got %v", err)
	}
}

func TestJournalDefaults(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Title: "Read", Category: "General"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := (&JournalCmd{Habit: "Read", Text: "chapter 3", Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("journal failed: %v", err)
	}

	svc, _ := ctx.Tracker()
	h, _ := cli.FindHabit(svc, "Read")
	entry, ok := svc.Ledger().GetProgress(h.ID, "2024-03-15")
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.JournalEntry != "chapter 3" || entry.PointValue() != 0 || entry.MoodValue() != 3 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Completed || entry.CompletionPercentage != 0 {
		t.Error("journal alone should not complete the day")
	}
}

func TestHabitLimitAndReactivate(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	for _, title := range []string{"A", "B", "C"} {
		if err := (&HabitAddCmd{Title: title, Category: "General"}).Run(ctx); err != nil {
			t.Fatalf("habit add %s failed: %v", title, err)
		}
	}
	err := (&HabitAddCmd{Title: "D", Category: "General"}).Run(ctx)
	if !errors.Is(err, subscription.ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	if err := (&HabitDeactivateCmd{Habit: "A"}).Run(ctx); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := (&HabitAddCmd{Title: "D", Category: "General"}).Run(ctx); err != nil {
		t.Fatalf("habit add after deactivate failed: %v", err)
	}

	err = (&HabitActivateCmd{Habit: "A"}).Run(ctx)
	if !errors.Is(err, subscription.ErrLimitReached) {
		t.Errorf("expected reactivation to hit the limit, got %v", err)
	}
	if err := (&HabitListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("habit list failed: %v", err)
	}
}

func TestGoalCommands(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	target := 10.0
	if err := (&GoalAddCmd{Title: "Read books", Category: "General", Target: &target, Unit: "books"}).Run(ctx); err != nil {
		t.Fatalf("goal add failed: %v", err)
	}
	if err := (&HabitAddCmd{Title: "Read", Category: "General", Goal: "read books"}).Run(ctx); err != nil {
		t.Fatalf("habit add with goal failed: %v", err)
	}

	svc, _ := ctx.Tracker()
	g, err := cli.FindGoal(svc, "Read books")
	if err != nil {
		t.Fatalf("goal not found: %v", err)
	}
	if linked := svc.Ledger().HabitsForGoal(g.ID); len(linked) != 1 {
		t.Fatalf("expected 1 linked habit, got %d", len(linked))
	}

	current := 10.0
	if err := (&GoalUpdateCmd{Goal: g.ID, Current: &current}).Run(ctx); err != nil {
		t.Fatalf("goal update failed: %v", err)
	}
	status, err := svc.GoalStatus(g.ID)
	if err != nil {
		t.Fatalf("goal status failed: %v", err)
	}
	if !status.Completed {
		t.Error("goal with current >= target should be completed")
	}

	if err := (&HabitUnlinkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	if linked := svc.Ledger().HabitsForGoal(g.ID); len(linked) != 0 {
		t.Errorf("expected no linked habits, got %d", len(linked))
	}
	if err := (&HabitLinkCmd{Habit: "Read", Goal: g.ID}).Run(ctx); err != nil {
		t.Errorf("link failed: %v", err)
	}
	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Errorf("goal list failed: %v", err)
	}
	if err := (&GoalProgressCmd{Goal: "read books"}).Run(ctx); err != nil {
		t.Errorf("goal progress failed: %v", err)
	}
}
