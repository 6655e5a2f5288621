package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/ratedzzz/small-steps/internal/badges"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/metrics"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/quotes"
	"github.com/ratedzzz/small-steps/internal/scoring"
	"github.com/ratedzzz/small-steps/internal/storage"
	"github.com/ratedzzz/small-steps/internal/subscription"
)

// Options configures a Service. Zero values fall back to the local
// timezone, the wall clock, generated UUIDs and no notifications.
type Options struct {
	Location *time.Location
	Now      func() time.Time
	NewID    func() string
	Notifier notifier.Sender
}

// Service ties the ledger to badges, plan limits and quotes. Every write
// that can change stats is followed by a badge check.
type Service struct {
	ledger *ledger.Ledger
	earned *badges.EarnedStore
	subs   *subscription.Manager
	likes  *quotes.Likes

	notify notifier.Sender
	loc    *time.Location
	now    func() time.Time

	// serializes badge checks so one unlock is announced once
	checkMu sync.Mutex
}

// New builds a Service over an initialized store
func New(store storage.Provider, opts Options) (*Service, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notifier.Nop{}
	}

	ledgerOpts := []ledger.Option{ledger.WithClock(opts.Now)}
	if opts.NewID != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithIDGenerator(opts.NewID))
	}
	l, err := ledger.New(ledger.NewStoreRepository(store), ledgerOpts...)
	if err != nil {
		return nil, err
	}

	s := &Service{
		ledger: l,
		earned: badges.NewEarnedStore(store),
		subs:   subscription.NewManager(store, opts.Now),
		likes:  quotes.NewLikes(store),
		notify: opts.Notifier,
		loc:    opts.Location,
		now:    opts.Now,
	}
	metrics.ActiveHabits.Set(float64(l.Snapshot().ActiveHabitCount()))
	return s, nil
}

// Ledger exposes the underlying ledger for reads
func (s *Service) Ledger() *ledger.Ledger { return s.ledger }

// Likes exposes the liked-quote set
func (s *Service) Likes() *quotes.Likes { return s.likes }

// Location is the timezone calendar dates are resolved in
func (s *Service) Location() *time.Location { return s.loc }

// Today returns the current time in the service's timezone
func (s *Service) Today() time.Time { return s.now().In(s.loc) }

// TodayKey returns today's ledger date key
func (s *Service) TodayKey() string { return ledger.DateKey(s.Today()) }

// Subscription returns the plan currently in force
func (s *Service) Subscription() (models.Subscription, error) {
	return s.subs.Current()
}

// SetSubscription switches plan tier
func (s *Service) SetSubscription(tier models.Tier) (models.Subscription, error) {
	return s.subs.Update(tier)
}

func (s *Service) checkLimit(kind subscription.LimitKind, count int) error {
	sub, err := s.subs.Current()
	if err != nil {
		return err
	}
	if !subscription.HasReachedLimit(sub, kind, count) {
		return nil
	}
	metrics.LimitRejections.WithLabelValues(string(kind)).Inc()
	limits := subscription.EffectiveLimits(sub)
	limit := limits.MaxGoals
	if kind == subscription.LimitHabits {
		limit = limits.MaxHabits
	}
	return fmt.Errorf("%w: %s plan allows %d active %s", subscription.ErrLimitReached, sub.Plan.Name, limit, kind)
}

// AddHabit creates a habit if the plan has room for another active one
func (s *Service) AddHabit(h models.Habit) (models.Habit, []models.Badge, error) {
	if err := s.checkLimit(subscription.LimitHabits, s.ledger.Snapshot().ActiveHabitCount()); err != nil {
		return models.Habit{}, nil, err
	}
	created, err := s.ledger.AddHabit(h)
	if err != nil {
		return models.Habit{}, nil, err
	}
	unlocked, err := s.afterWrite()
	return created, unlocked, err
}

// UpdateHabit edits a habit. Reactivating counts against the plan limit.
func (s *Service) UpdateHabit(id string, u models.HabitUpdate) (models.Habit, []models.Badge, error) {
	if u.IsActive != nil && *u.IsActive {
		current, err := s.ledger.Habit(id)
		if err != nil {
			return models.Habit{}, nil, err
		}
		if !current.IsActive {
			if err := s.checkLimit(subscription.LimitHabits, s.ledger.Snapshot().ActiveHabitCount()); err != nil {
				return models.Habit{}, nil, err
			}
		}
	}
	updated, err := s.ledger.UpdateHabit(id, u)
	if err != nil {
		return models.Habit{}, nil, err
	}
	unlocked, err := s.afterWrite()
	return updated, unlocked, err
}

// DeactivateHabit soft-deletes a habit
func (s *Service) DeactivateHabit(id string) (models.Habit, error) {
	h, err := s.ledger.DeactivateHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	metrics.ActiveHabits.Set(float64(s.ledger.Snapshot().ActiveHabitCount()))
	return h, nil
}

// LinkHabit attaches a habit to a goal
func (s *Service) LinkHabit(habitID, goalID string) (models.Habit, []models.Badge, error) {
	h, err := s.ledger.LinkHabitToGoal(habitID, goalID)
	if err != nil {
		return models.Habit{}, nil, err
	}
	unlocked, err := s.afterWrite()
	return h, unlocked, err
}

// UnlinkHabit detaches a habit from its goal
func (s *Service) UnlinkHabit(habitID string) (models.Habit, error) {
	return s.ledger.UnlinkHabitFromGoal(habitID)
}

// AddGoal creates a goal if the plan has room for another active one
func (s *Service) AddGoal(g models.Goal) (models.Goal, error) {
	if err := s.checkLimit(subscription.LimitGoals, s.ledger.Snapshot().ActiveGoalCount()); err != nil {
		return models.Goal{}, err
	}
	return s.ledger.AddGoal(g)
}

// UpdateGoal edits a goal; reaching a numeric target can unlock goal badges
func (s *Service) UpdateGoal(id string, u models.GoalUpdate) (models.Goal, []models.Badge, error) {
	if u.IsActive != nil && *u.IsActive {
		current, err := s.ledger.Goal(id)
		if err != nil {
			return models.Goal{}, nil, err
		}
		if !current.IsActive {
			if err := s.checkLimit(subscription.LimitGoals, s.ledger.Snapshot().ActiveGoalCount()); err != nil {
				return models.Goal{}, nil, err
			}
		}
	}
	g, err := s.ledger.UpdateGoal(id, u)
	if err != nil {
		return models.Goal{}, nil, err
	}
	unlocked, err := s.afterWrite()
	return g, unlocked, err
}

// checkHistory refuses dates older than the plan's history window
func (s *Service) checkHistory(date string) error {
	d, err := ledger.ParseDate(date, s.loc)
	if err != nil {
		return err
	}
	sub, err := s.subs.Current()
	if err != nil {
		return err
	}
	if err := subscription.CheckHistory(sub, d, s.Today()); err != nil {
		metrics.LimitRejections.WithLabelValues("history").Inc()
		return err
	}
	return nil
}

// RecordProgress sets a habit's completion for date and returns any badges
// the write unlocked
func (s *Service) RecordProgress(habitID, date string, percentage int, notes string) (models.ProgressEntry, []models.Badge, error) {
	if err := s.checkHistory(date); err != nil {
		return models.ProgressEntry{}, nil, err
	}
	entry, err := s.ledger.SetProgress(habitID, date, percentage, notes)
	if err != nil {
		return models.ProgressEntry{}, nil, err
	}
	metrics.ProgressRecorded.Inc()

	unlocked, err := s.CheckBadges()
	return entry, unlocked, err
}

// RecordJournal stores a reflection for date and returns any badges the
// write unlocked
func (s *Service) RecordJournal(habitID, date, text string, points, mood *int) (models.ProgressEntry, []models.Badge, error) {
	if err := s.checkHistory(date); err != nil {
		return models.ProgressEntry{}, nil, err
	}
	entry, err := s.ledger.SetJournal(habitID, date, text, points, mood)
	if err != nil {
		return models.ProgressEntry{}, nil, err
	}
	metrics.JournalsRecorded.Inc()

	unlocked, err := s.CheckBadges()
	return entry, unlocked, err
}

func (s *Service) afterWrite() ([]models.Badge, error) {
	metrics.ActiveHabits.Set(float64(s.ledger.Snapshot().ActiveHabitCount()))
	return s.CheckBadges()
}

// Stats summarizes the ledger as of now
func (s *Service) Stats() models.UserStats {
	return scoring.Summarize(s.ledger.Snapshot(), s.Today(), s.loc)
}

// CheckBadges evaluates the catalog against current stats, persists newly
// earned badges and announces each one
func (s *Service) CheckBadges() ([]models.Badge, error) {
	s.checkMu.Lock()
	defer s.checkMu.Unlock()

	now := s.Today()
	stats := scoring.Summarize(s.ledger.Snapshot(), now, s.loc)
	earned, err := s.earned.IDs()
	if err != nil {
		return nil, err
	}
	metrics.BadgeChecks.Inc()

	eligible := badges.CheckEligibility(stats, earned, now)
	if len(eligible) == 0 {
		return nil, nil
	}

	ids := make([]string, len(eligible))
	for i, b := range eligible {
		ids[i] = b.ID
	}
	if _, err := s.earned.Add(ids...); err != nil {
		return nil, err
	}

	for _, b := range eligible {
		metrics.BadgesUnlocked.WithLabelValues(string(b.Rarity)).Inc()
		logger.Info("Badge unlocked", "badge", b.ID, "points", b.Points)
		if err := s.notify.Notify(fmt.Sprintf("%s Badge unlocked: %s (+%d pts)", b.Icon, b.Name, b.Points)); err != nil {
			metrics.NotificationsFailed.Inc()
			logger.Warn("Failed to send badge notification", "badge", b.ID, "error", err)
		}
	}
	return eligible, nil
}

// EarnedBadges returns catalog entries for the earned IDs, in earn order
func (s *Service) EarnedBadges() ([]models.Badge, error) {
	ids, err := s.earned.IDs()
	if err != nil {
		return nil, err
	}
	out := make([]models.Badge, 0, len(ids))
	for _, id := range ids {
		if b, ok := badges.Lookup(id); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// Level returns the earned points total and its tier
func (s *Service) Level() (int, models.Level, error) {
	ids, err := s.earned.IDs()
	if err != nil {
		return 0, models.Level{}, err
	}
	points := badges.TotalPoints(ids)
	return points, badges.UserLevel(points), nil
}

// Streak returns a habit's current streak as of today
func (s *Service) Streak(habitID string) (int, error) {
	if _, err := s.ledger.Habit(habitID); err != nil {
		return 0, err
	}
	return scoring.Streak(s.ledger.Snapshot(), habitID, s.Today()), nil
}

// HabitStats summarizes one habit's history
func (s *Service) HabitStats(habitID string) (scoring.HabitStats, error) {
	if _, err := s.ledger.Habit(habitID); err != nil {
		return scoring.HabitStats{}, err
	}
	return scoring.SummarizeHabit(s.ledger.Snapshot(), habitID, s.Today()), nil
}

// TodayQuote returns the daily quote for the current time of day
func (s *Service) TodayQuote() models.Quote {
	return quotes.Daily(s.Today())
}
