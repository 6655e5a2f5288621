package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/storage"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupTestLedger(t *testing.T) (*Ledger, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository(NewState())
	l, err := New(repo, WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return l, repo
}

func addTestHabit(t *testing.T, l *Ledger, title string) models.Habit {
	t.Helper()
	h, err := l.AddHabit(models.Habit{Title: title})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	return h
}

func TestSetProgressRoundTrip(t *testing.T) {
	l, repo := setupTestLedger(t)
	h := addTestHabit(t, l, "Meditate")

	if _, ok := l.GetProgress(h.ID, "2024-05-10"); ok {
		t.Fatal("expected no entry before any write")
	}

	tests := []struct {
		pct           int
		wantCompleted bool
	}{
		{pct: 50, wantCompleted: false},
		{pct: 100, wantCompleted: true},
		{pct: 120, wantCompleted: true},
		{pct: -5, wantCompleted: false},
	}

	for _, tt := range tests {
		if _, err := l.SetProgress(h.ID, "2024-05-10", tt.pct, "note"); err != nil {
			t.Fatalf("failed to set progress: %v", err)
		}
		got, ok := l.GetProgress(h.ID, "2024-05-10")
		if !ok {
			t.Fatal("expected entry after write")
		}
		if got.CompletionPercentage != tt.pct || got.Completed != tt.wantCompleted {
			t.Errorf("SetProgress(%d) stored pct=%d completed=%v", tt.pct, got.CompletionPercentage, got.Completed)
		}
		if got.Timestamp != fixedNow.UnixMilli() {
			t.Errorf("expected timestamp %d, got %d", fixedNow.UnixMilli(), got.Timestamp)
		}
	}

	if repo.Saves() != 1+len(tests) {
		t.Errorf("expected every write to be saved, got %d saves", repo.Saves())
	}
}

func TestSetJournalMergesWithProgress(t *testing.T) {
	l, _ := setupTestLedger(t)
	h := addTestHabit(t, l, "Journal")

	if _, err := l.SetProgress(h.ID, "2024-05-09", 80, "morning"); err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}
	if _, err := l.SetJournal(h.ID, "2024-05-09", "felt good", intPtr(7), nil); err != nil {
		t.Fatalf("failed to set journal: %v", err)
	}

	got, _ := l.GetProgress(h.ID, "2024-05-09")
	if got.CompletionPercentage != 80 || got.Completed {
		t.Errorf("journal write must keep completion fields, got %+v", got)
	}
	if got.Notes != "morning" {
		t.Errorf("journal write must keep notes, got %q", got.Notes)
	}
	if got.JournalEntry != "felt good" || got.PointValue() != 7 || got.MoodValue() != constants.DefaultMood {
		t.Errorf("unexpected journal fields: %+v", got)
	}

	// A later progress write keeps the journal
	if _, err := l.SetProgress(h.ID, "2024-05-09", 100, ""); err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}
	got, _ = l.GetProgress(h.ID, "2024-05-09")
	if got.JournalEntry != "felt good" || !got.Completed {
		t.Errorf("progress write must keep the journal, got %+v", got)
	}
}

func TestSetJournalFreshEntryDefaults(t *testing.T) {
	l, _ := setupTestLedger(t)
	h := addTestHabit(t, l, "Stretch")

	got, err := l.SetJournal(h.ID, "2024-05-01", "sore", nil, nil)
	if err != nil {
		t.Fatalf("failed to set journal: %v", err)
	}
	if got.Completed || got.CompletionPercentage != 0 {
		t.Errorf("fresh journal entry should start incomplete at 0%%, got %+v", got)
	}
	if got.Points == nil || *got.Points != 0 {
		t.Errorf("expected points to default to 0, got %v", got.Points)
	}
	if got.Mood == nil || *got.Mood != 3 {
		t.Errorf("expected mood to default to 3, got %v", got.Mood)
	}
}

func TestWritesRejectUnknownHabitAndBadDate(t *testing.T) {
	l, _ := setupTestLedger(t)
	h := addTestHabit(t, l, "Walk")

	if _, err := l.SetProgress("missing", "2024-05-10", 100, ""); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
	if _, err := l.SetJournal("missing", "2024-05-10", "x", nil, nil); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
	if _, err := l.SetProgress(h.ID, "05/10/2024", 100, ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestHabitLifecycle(t *testing.T) {
	l, _ := setupTestLedger(t)

	if _, err := l.AddHabit(models.Habit{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	h := addTestHabit(t, l, "Read")
	if h.ID != "id-1" || !h.IsActive || h.Category != constants.DefaultCategory || h.Color != constants.DefaultHabitColor {
		t.Errorf("unexpected new habit: %+v", h)
	}
	if !h.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected createdAt %v, got %v", fixedNow, h.CreatedAt)
	}

	updated, err := l.UpdateHabit(h.ID, models.HabitUpdate{Title: strPtr("Read 20 pages"), Category: strPtr("Learning")})
	if err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}
	if updated.Title != "Read 20 pages" || updated.Category != "Learning" || updated.Color != constants.DefaultHabitColor {
		t.Errorf("unexpected updated habit: %+v", updated)
	}

	if _, err := l.SetProgress(h.ID, "2024-05-10", 100, ""); err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}
	if _, err := l.DeactivateHabit(h.ID); err != nil {
		t.Fatalf("failed to deactivate habit: %v", err)
	}

	if got := l.Habits(false); len(got) != 0 {
		t.Errorf("expected no active habits, got %d", len(got))
	}
	if got := l.Habits(true); len(got) != 1 || got[0].IsActive {
		t.Errorf("deactivated habit must be kept, got %+v", got)
	}
	if _, ok := l.GetProgress(h.ID, "2024-05-10"); !ok {
		t.Error("deactivation must keep progress history")
	}

	if _, err := l.Habit("nope"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
	if _, err := l.UpdateHabit("nope", models.HabitUpdate{}); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestGoalLinking(t *testing.T) {
	l, _ := setupTestLedger(t)
	h1 := addTestHabit(t, l, "Run")
	h2 := addTestHabit(t, l, "Stretch")

	target := 42.0
	g, err := l.AddGoal(models.Goal{Title: "Marathon", TargetValue: &target, Unit: "km", Deadline: "2024-10-01"})
	if err != nil {
		t.Fatalf("failed to add goal: %v", err)
	}
	if g.Category != constants.DefaultCategory || g.Color != constants.DefaultGoalColor {
		t.Errorf("unexpected goal defaults: %+v", g)
	}

	if _, err := l.LinkHabitToGoal(h1.ID, g.ID); err != nil {
		t.Fatalf("failed to link habit: %v", err)
	}
	if _, err := l.LinkHabitToGoal(h2.ID, g.ID); err != nil {
		t.Fatalf("failed to link habit: %v", err)
	}
	if _, err := l.LinkHabitToGoal(h1.ID, "missing"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}

	if got := l.HabitsForGoal(g.ID); len(got) != 2 {
		t.Fatalf("expected 2 linked habits, got %d", len(got))
	}

	if _, err := l.UnlinkHabitFromGoal(h1.ID); err != nil {
		t.Fatalf("failed to unlink habit: %v", err)
	}
	linked := l.HabitsForGoal(g.ID)
	if len(linked) != 1 || linked[0].ID != h2.ID {
		t.Errorf("expected only %s linked, got %+v", h2.ID, linked)
	}

	current := 42.0
	updated, err := l.UpdateGoal(g.ID, models.GoalUpdate{CurrentValue: &current})
	if err != nil {
		t.Fatalf("failed to update goal: %v", err)
	}
	if !updated.TargetReached() {
		t.Error("expected target to be reached after update")
	}

	if _, err := l.AddGoal(models.Goal{Title: "Bad", Deadline: "tomorrow"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for bad deadline, got %v", err)
	}
	if _, err := l.UpdateGoal("missing", models.GoalUpdate{}); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	l, _ := setupTestLedger(t)
	h := addTestHabit(t, l, "Water")
	if _, err := l.SetProgress(h.ID, "2024-05-10", 40, ""); err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}

	snap := l.Snapshot()
	snap.Progress[h.ID]["2024-05-10"] = models.ProgressEntry{CompletionPercentage: 100}
	snap.Habits[0].Title = "changed"

	got, _ := l.GetProgress(h.ID, "2024-05-10")
	if got.CompletionPercentage != 40 {
		t.Error("mutating a snapshot must not change the ledger")
	}
	if hb, _ := l.Habit(h.ID); hb.Title != "Water" {
		t.Error("mutating a snapshot habit must not change the ledger")
	}
}

func TestConcurrentWrites(t *testing.T) {
	l, _ := setupTestLedger(t)
	h := addTestHabit(t, l, "Pushups")

	var wg sync.WaitGroup
	for day := 1; day <= 20; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			date := fmt.Sprintf("2024-04-%02d", day)
			if _, err := l.SetProgress(h.ID, date, 100, ""); err != nil {
				t.Errorf("failed to set progress: %v", err)
			}
		}(day)
	}
	wg.Wait()

	if got := len(l.Snapshot().Progress[h.ID]); got != 20 {
		t.Errorf("expected 20 entries, got %d", got)
	}
}

func TestStoreRepositoryPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	l, err := New(NewStoreRepository(store))
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	h := addTestHabit(t, l, "Floss")
	if _, err := l.SetProgress(h.ID, "2024-05-10", 100, "done"); err != nil {
		t.Fatalf("failed to set progress: %v", err)
	}

	raw, err := store.Get(constants.KeyHabitStorage)
	if err != nil {
		t.Fatalf("expected habit-storage to be written: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("habit-storage is not a JSON object: %v", err)
	}
	for _, key := range []string{"habits", "goals", "progress"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("habit-storage is missing %q", key)
		}
	}

	reloaded, err := New(NewStoreRepository(store))
	if err != nil {
		t.Fatalf("failed to reload ledger: %v", err)
	}
	got, ok := reloaded.GetProgress(h.ID, "2024-05-10")
	if !ok || !got.Completed || got.Notes != "done" {
		t.Errorf("unexpected reloaded entry: %+v (ok=%v)", got, ok)
	}
}

func TestStoreRepositoryNormalizesLegacyRecords(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Init()
	legacy := `{"habits":[{"id":"h1","title":"Old","isActive":true}],"goals":[{"id":"g1","title":"Goal"}]}`
	if err := store.Set(constants.KeyHabitStorage, []byte(legacy)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	s, err := NewStoreRepository(store).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if s.Habits[0].Category != constants.DefaultCategory || s.Habits[0].Color != constants.DefaultHabitColor {
		t.Errorf("habit defaults not applied: %+v", s.Habits[0])
	}
	if s.Goals[0].Category != constants.DefaultCategory || s.Goals[0].Color != constants.DefaultGoalColor {
		t.Errorf("goal defaults not applied: %+v", s.Goals[0])
	}
	if s.Progress == nil {
		t.Error("progress map should be allocated")
	}
}

func TestStoreRepositoryRecoversFromCorruptState(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Use(&buf, log.WarnLevel)
	defer func() { logger.Logger = prev }()

	store := storage.NewMemoryStore()
	_ = store.Init()
	if err := store.Set(constants.KeyHabitStorage, []byte(`{"habits": 5`)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	l, err := New(NewStoreRepository(store))
	if err != nil {
		t.Fatalf("corrupt state must not be an error, got %v", err)
	}
	if got := l.Habits(true); len(got) != 0 {
		t.Errorf("expected empty state after recovery, got %d habits", len(got))
	}
	if !strings.Contains(buf.String(), constants.KeyHabitStorage) {
		t.Errorf("expected a warning naming the key, got %q", buf.String())
	}

	raw, _ := store.Get(constants.KeyHabitStorage)
	if !json.Valid(raw) {
		t.Errorf("corrupt key should be reset to a valid default, got %s", raw)
	}
}

func TestDateHelpers(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	tm := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC).In(loc)
	if got := DateKey(tm); got != "2023-12-31" {
		t.Errorf("DateKey() = %q, want local date 2023-12-31", got)
	}

	parsed, err := ParseDate("2024-02-29", loc)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if parsed.Location() != loc || parsed.Day() != 29 {
		t.Errorf("unexpected parsed date %v", parsed)
	}
	if _, err := ParseDate("2023-02-29", loc); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
