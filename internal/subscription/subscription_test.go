package subscription

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/storage"
)

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setupManager(t *testing.T) (*Manager, storage.Provider, *time.Time) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	clock := now
	return NewManager(store, func() time.Time { return clock }), store, &clock
}

func TestPlans(t *testing.T) {
	plans := Plans()
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}

	free, _ := PlanFor(models.TierFree)
	if free.ID != "free_tier" || free.Limits.MaxHabits != 3 || free.Limits.MaxGoals != 2 || free.Limits.HistoryDays != 7 {
		t.Errorf("unexpected free plan: %+v", free)
	}
	for _, f := range Features() {
		if free.Limits.Features[f] {
			t.Errorf("free plan should not enable %s", f)
		}
	}

	premium, _ := PlanFor(models.TierPremium)
	if premium.Price.Monthly != 4.99 || premium.Limits.MaxHabits != models.Unlimited {
		t.Errorf("unexpected premium plan: %+v", premium)
	}
	if !premium.Limits.Features[models.FeatureExportData] || premium.Limits.Features[models.FeatureCustomBadges] {
		t.Errorf("unexpected premium features: %v", premium.Limits.Features)
	}

	pro, _ := PlanFor(models.TierPro)
	for _, f := range Features() {
		if !pro.Limits.Features[f] {
			t.Errorf("pro plan should enable %s", f)
		}
	}

	if _, ok := PlanFor("gold"); ok {
		t.Error("expected unknown tier to have no plan")
	}
}

func TestCurrentDefault(t *testing.T) {
	m, _, _ := setupManager(t)

	sub, err := m.Current()
	if err != nil {
		t.Fatalf("failed to load subscription: %v", err)
	}
	if sub.CurrentTier != models.TierFree || !sub.IsActive || sub.ExpiresAt != nil {
		t.Errorf("unexpected default subscription: %+v", sub)
	}
}

func TestUpdateAndExpiry(t *testing.T) {
	m, _, clock := setupManager(t)

	sub, err := m.Update(models.TierPremium)
	if err != nil {
		t.Fatalf("failed to update subscription: %v", err)
	}
	want := now.Add(30 * 24 * time.Hour)
	if sub.ExpiresAt == nil || !sub.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, sub.ExpiresAt)
	}

	sub, err = m.Current()
	if err != nil {
		t.Fatalf("failed to load subscription: %v", err)
	}
	if sub.CurrentTier != models.TierPremium || !sub.IsActive {
		t.Errorf("expected active premium, got %+v", sub)
	}
	if HasReachedLimit(sub, LimitHabits, 100) {
		t.Error("premium habits should be unlimited")
	}

	*clock = want
	sub, err = m.Current()
	if err != nil {
		t.Fatalf("failed to load subscription: %v", err)
	}
	if sub.IsActive {
		t.Error("expected lapsed subscription to be inactive")
	}
	if !HasReachedLimit(sub, LimitHabits, 3) {
		t.Error("lapsed subscription should fall back to free limits")
	}
	if CanUseFeature(sub, models.FeatureExportData) {
		t.Error("lapsed subscription should lose premium features")
	}
}

func TestUpdateFreeHasNoExpiry(t *testing.T) {
	m, _, _ := setupManager(t)

	sub, err := m.Update(models.TierFree)
	if err != nil {
		t.Fatalf("failed to update subscription: %v", err)
	}
	if sub.ExpiresAt != nil {
		t.Errorf("free tier should not expire, got %v", sub.ExpiresAt)
	}

	if _, err := m.Update("gold"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
}

func TestCurrentCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"currentTier":`},
		{"unknown tier", `{"currentTier":"gold","isActive":true}`},
		{"wrong shape", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, _ := setupManager(t)
			if err := store.Set(constants.KeySubscription, []byte(tt.data)); err != nil {
				t.Fatalf("failed to seed store: %v", err)
			}

			var buf bytes.Buffer
			prev := logger.Use(&buf, log.WarnLevel)
			defer func() { logger.Logger = prev }()

			sub, err := m.Current()
			if err != nil {
				t.Fatalf("corrupt data should not error: %v", err)
			}
			if sub.CurrentTier != models.TierFree {
				t.Errorf("expected free fallback, got %s", sub.CurrentTier)
			}
			if !strings.Contains(buf.String(), "Corrupt persisted state") {
				t.Errorf("expected a corruption warning, got %q", buf.String())
			}

			raw, err := store.Get(constants.KeySubscription)
			if err != nil {
				t.Fatalf("failed to read reset value: %v", err)
			}
			var stored models.Subscription
			if err := json.Unmarshal(raw, &stored); err != nil || stored.CurrentTier != models.TierFree {
				t.Errorf("expected stored free default, got %s (%v)", raw, err)
			}
		})
	}
}

func TestHasReachedLimit(t *testing.T) {
	free := Default()

	tests := []struct {
		kind  LimitKind
		count int
		want  bool
	}{
		{LimitHabits, 2, false},
		{LimitHabits, 3, true},
		{LimitGoals, 1, false},
		{LimitGoals, 2, true},
	}
	for _, tt := range tests {
		if got := HasReachedLimit(free, tt.kind, tt.count); got != tt.want {
			t.Errorf("HasReachedLimit(%s, %d) = %v, want %v", tt.kind, tt.count, got, tt.want)
		}
	}
}

func TestUpgradeRequired(t *testing.T) {
	free := Default()

	if got := UpgradeRequired(free, models.FeatureAnalytics); got != models.TierPremium {
		t.Errorf("expected premium for analytics, got %q", got)
	}
	if got := UpgradeRequired(free, models.FeatureCustomBadges); got != models.TierPro {
		t.Errorf("expected pro for custom badges, got %q", got)
	}
	if got := UpgradeRequired(free, "teleport"); got != "" {
		t.Errorf("expected no tier for unknown feature, got %q", got)
	}

	pro, _ := PlanFor(models.TierPro)
	sub := models.Subscription{CurrentTier: models.TierPro, Plan: pro, IsActive: true}
	if got := UpgradeRequired(sub, models.FeatureCustomBadges); got != "" {
		t.Errorf("pro should need no upgrade, got %q", got)
	}
}

func TestCheckHistory(t *testing.T) {
	free := Default()
	today := time.Date(2024, 5, 20, 23, 0, 0, 0, time.UTC)

	if err := CheckHistory(free, today.AddDate(0, 0, -7), today); err != nil {
		t.Errorf("7 days back should be allowed on free: %v", err)
	}
	if err := CheckHistory(free, today.AddDate(0, 0, 1), today); err != nil {
		t.Errorf("future dates should be allowed: %v", err)
	}
	err := CheckHistory(free, today.AddDate(0, 0, -8), today)
	if !errors.Is(err, ErrHistoryLocked) {
		t.Errorf("expected ErrHistoryLocked, got %v", err)
	}

	premium, _ := PlanFor(models.TierPremium)
	paid := models.Subscription{CurrentTier: models.TierPremium, Plan: premium, IsActive: true}
	if err := CheckHistory(paid, today.AddDate(-2, 0, 0), today); err != nil {
		t.Errorf("premium history should be unlimited: %v", err)
	}
}
