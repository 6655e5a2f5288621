package quotes

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/storage"
)

func TestCatalogSorted(t *testing.T) {
	all := All()
	if len(all) < 25 {
		t.Fatalf("expected at least 25 quotes, got %d", len(all))
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].ID < all[j].ID }) {
		t.Error("catalog should be sorted by ID")
	}

	q, ok := Lookup("habits_1")
	if !ok || q.Author != "Aristotle" {
		t.Errorf("unexpected habits_1 lookup: %+v (ok=%v)", q, ok)
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("expected unknown ID lookup to fail")
	}
}

func TestTimeContext(t *testing.T) {
	tests := []struct {
		hour int
		want models.QuoteContext
	}{
		{0, models.ContextMorning},
		{11, models.ContextMorning},
		{12, models.ContextAfternoon},
		{17, models.ContextAfternoon},
		{18, models.ContextEvening},
		{23, models.ContextEvening},
	}
	for _, tt := range tests {
		if got := TimeContext(tt.hour); got != tt.want {
			t.Errorf("TimeContext(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestCandidates(t *testing.T) {
	for _, q := range Candidates(models.ContextAfternoon) {
		if q.Context != models.ContextAnytime {
			t.Errorf("afternoon candidate %s has context %s", q.ID, q.Context)
		}
	}

	var sawMorning bool
	for _, q := range Candidates(models.ContextMorning) {
		if q.Context != models.ContextMorning && q.Context != models.ContextAnytime {
			t.Errorf("morning candidate %s has context %s", q.ID, q.Context)
		}
		sawMorning = sawMorning || q.Context == models.ContextMorning
	}
	if !sawMorning {
		t.Error("expected morning quotes among morning candidates")
	}
}

func TestDaily(t *testing.T) {
	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	candidates := Candidates(models.ContextMorning)
	want := candidates[(10+2)%len(candidates)]
	if got := Daily(morning); got.ID != want.ID {
		t.Errorf("Daily() = %s, want %s", got.ID, want.ID)
	}

	if Daily(morning).ID != Daily(morning.Add(time.Hour)).ID {
		t.Error("expected the same quote within a morning")
	}
}

func setupLikes(t *testing.T) (*Likes, storage.Provider) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewLikes(store), store
}

func TestLikesToggle(t *testing.T) {
	likes, _ := setupLikes(t)

	liked, err := likes.Toggle("habits_1")
	if err != nil {
		t.Fatalf("failed to toggle like: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}
	if _, err := likes.Toggle("focus_1"); err != nil {
		t.Fatalf("failed to toggle like: %v", err)
	}

	ok, err := likes.IsLiked("habits_1")
	if err != nil || !ok {
		t.Errorf("expected habits_1 liked, got %v (%v)", ok, err)
	}

	liked, err = likes.Toggle("habits_1")
	if err != nil {
		t.Fatalf("failed to toggle like: %v", err)
	}
	if liked {
		t.Error("expected second toggle to unlike")
	}

	ids, _ := likes.List()
	if strings.Join(ids, ",") != "focus_1" {
		t.Errorf("unexpected liked set %v", ids)
	}

	if _, err := likes.Toggle("nope"); !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestLikesCorrupt(t *testing.T) {
	likes, store := setupLikes(t)
	if err := store.Set(constants.KeyLikedQuotes, []byte(`"habits_1"`)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	var buf bytes.Buffer
	prev := logger.Use(&buf, log.WarnLevel)
	defer func() { logger.Logger = prev }()

	ids, err := likes.List()
	if err != nil {
		t.Fatalf("corrupt data should not error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty set, got %v", ids)
	}
	if !strings.Contains(buf.String(), "Corrupt persisted state") {
		t.Errorf("expected a corruption warning, got %q", buf.String())
	}
}
