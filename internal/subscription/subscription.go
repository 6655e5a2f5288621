package subscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/storage"
)

var (
	ErrLimitReached  = errors.New("plan limit reached")
	ErrHistoryLocked = errors.New("date is outside the plan's history window")
	ErrUnknownTier   = errors.New("unknown subscription tier")
)

// LimitKind names a counted plan limit
type LimitKind string

const (
	LimitHabits LimitKind = "habits"
	LimitGoals  LimitKind = "goals"
)

// Default is the subscription of a user who never upgraded
func Default() models.Subscription {
	return models.Subscription{
		CurrentTier: models.TierFree,
		Plan:        freePlan(),
		IsActive:    true,
	}
}

// Manager persists the subscription under the subscription key
type Manager struct {
	mu    sync.Mutex
	store storage.Provider
	now   func() time.Time
}

// NewManager creates a Manager; now defaults to time.Now when nil
func NewManager(store storage.Provider, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now}
}

// Current loads the subscription. Missing, corrupt or unknown-tier data
// yields the free default. A lapsed paid subscription is reported with
// IsActive false.
func (m *Manager) Current() (models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Get(constants.KeySubscription)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Default(), nil
		}
		return models.Subscription{}, fmt.Errorf("failed to read %s: %w", constants.KeySubscription, err)
	}

	var sub models.Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return m.reset(err)
	}
	plan, ok := PlanFor(sub.CurrentTier)
	if !ok {
		return m.reset(fmt.Errorf("%w: %q", ErrUnknownTier, sub.CurrentTier))
	}

	// the stored plan is informational; the catalog is authoritative
	sub.Plan = plan
	if sub.Expired(m.now()) {
		sub.IsActive = false
	}
	return sub, nil
}

func (m *Manager) reset(cause error) (models.Subscription, error) {
	logger.Warn("Corrupt persisted state, resetting to defaults", "key", constants.KeySubscription, "error", cause)
	def := Default()
	if err := m.save(def); err != nil {
		return models.Subscription{}, err
	}
	return def, nil
}

func (m *Manager) save(sub models.Subscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	if err := m.store.Set(constants.KeySubscription, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.KeySubscription, err)
	}
	return nil
}

// Update switches to tier. Paid tiers run for one term from now.
func (m *Manager) Update(tier models.Tier) (models.Subscription, error) {
	plan, ok := PlanFor(tier)
	if !ok {
		return models.Subscription{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sub := models.Subscription{
		CurrentTier: tier,
		Plan:        plan,
		IsActive:    true,
	}
	if tier != models.TierFree {
		expires := m.now().Add(constants.SubscriptionTerm).UTC()
		sub.ExpiresAt = &expires
	}

	if err := m.save(sub); err != nil {
		return models.Subscription{}, err
	}
	logger.Info("Subscription updated", "tier", tier)
	return sub, nil
}

// EffectiveLimits returns the limits in force: the plan's while active,
// free limits otherwise
func EffectiveLimits(sub models.Subscription) models.Limits {
	if !sub.IsActive {
		return freePlan().Limits
	}
	return sub.Plan.Limits
}

// CanUseFeature reports whether the effective plan enables feature
func CanUseFeature(sub models.Subscription, feature models.Feature) bool {
	return EffectiveLimits(sub).Features[feature]
}

// HasReachedLimit reports whether count already meets the plan limit for kind
func HasReachedLimit(sub models.Subscription, kind LimitKind, count int) bool {
	limits := EffectiveLimits(sub)
	limit := limits.MaxGoals
	if kind == LimitHabits {
		limit = limits.MaxHabits
	}
	if limit == models.Unlimited {
		return false
	}
	return count >= limit
}

// UpgradeRequired returns the cheapest tier enabling feature, or "" when
// the current plan already has it or no plan does
func UpgradeRequired(sub models.Subscription, feature models.Feature) models.Tier {
	if CanUseFeature(sub, feature) {
		return ""
	}
	if premiumPlan().Limits.Features[feature] {
		return models.TierPremium
	}
	if proPlan().Limits.Features[feature] {
		return models.TierPro
	}
	return ""
}

// CheckHistory returns ErrHistoryLocked when date lies further than the
// plan's history window before today. Both are compared as calendar days.
func CheckHistory(sub models.Subscription, date, today time.Time) error {
	window := EffectiveLimits(sub).HistoryDays
	if window == models.Unlimited {
		return nil
	}

	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysBack := int(t.Sub(d).Hours() / 24)
	if daysBack > window {
		return fmt.Errorf("%w: %s is %d days back, plan allows %d",
			ErrHistoryLocked, d.Format(constants.DateFormat), daysBack, window)
	}
	return nil
}
