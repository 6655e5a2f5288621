package tracker

import (
	"time"

	"github.com/ratedzzz/small-steps/internal/badges"
	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/scoring"
	"github.com/ratedzzz/small-steps/internal/subscription"
)

// HabitDay is one habit's row on a dashboard
type HabitDay struct {
	Habit  models.Habit         `json:"habit"`
	Entry  models.ProgressEntry `json:"entry"`
	Logged bool                 `json:"logged"`
	Streak int                  `json:"streak"`
}

// GoalStatus is a goal with its derived progress
type GoalStatus struct {
	Goal      models.Goal    `json:"goal"`
	Progress  int            `json:"progress"`
	Completed bool           `json:"completed"`
	Habits    []models.Habit `json:"habits"`
}

type Dashboard struct {
	Date   string       `json:"date"`
	Habits []HabitDay   `json:"habits"`
	Goals  []GoalStatus `json:"goals"`
	Quote  models.Quote `json:"quote"`
}

// BadgeProgress pairs a locked badge with how close it is
type BadgeProgress struct {
	Badge    models.Badge `json:"badge"`
	Progress float64      `json:"progress"`
}

type Profile struct {
	Stats  models.UserStats `json:"stats"`
	Earned []models.Badge   `json:"earned"`
	Locked []BadgeProgress  `json:"locked"`
	Points int              `json:"points"`
	Level  models.Level     `json:"level"`
}

// HistoryDay is one calendar cell of a habit's history
type HistoryDay struct {
	Date      string               `json:"date"`
	Entry     models.ProgressEntry `json:"entry"`
	Logged    bool                 `json:"logged"`
	Qualifies bool                 `json:"qualifies"`
}

// Dashboard lists active habits with their entry for day, and goals with
// their progress as of day
func (s *Service) Dashboard(day time.Time) Dashboard {
	day = day.In(s.loc)
	date := ledger.DateKey(day)
	snap := s.ledger.Snapshot()

	d := Dashboard{
		Date:   date,
		Habits: []HabitDay{},
		Goals:  []GoalStatus{},
		Quote:  s.TodayQuote(),
	}
	for _, h := range snap.Habits {
		if !h.IsActive {
			continue
		}
		e, ok := snap.Entry(h.ID, date)
		d.Habits = append(d.Habits, HabitDay{
			Habit:  h,
			Entry:  e,
			Logged: ok,
			Streak: scoring.Streak(snap, h.ID, day),
		})
	}
	for _, g := range snap.Goals {
		if !g.IsActive {
			continue
		}
		d.Goals = append(d.Goals, goalStatus(snap, g, day))
	}
	return d
}

func goalStatus(snap ledger.State, g models.Goal, day time.Time) GoalStatus {
	return GoalStatus{
		Goal:      g,
		Progress:  scoring.GoalProgress(snap, g.ID, day),
		Completed: scoring.GoalCompleted(snap, g, day),
		Habits:    snap.HabitsForGoal(g.ID),
	}
}

// GoalStatus returns a single goal's progress as of today
func (s *Service) GoalStatus(goalID string) (GoalStatus, error) {
	g, err := s.ledger.Goal(goalID)
	if err != nil {
		return GoalStatus{}, err
	}
	return goalStatus(s.ledger.Snapshot(), g, s.Today()), nil
}

// Profile gathers stats, earned and locked badges, points and level
func (s *Service) Profile() (Profile, error) {
	earned, err := s.EarnedBadges()
	if err != nil {
		return Profile{}, err
	}
	ids := make([]string, len(earned))
	have := make(map[string]bool, len(earned))
	for i, b := range earned {
		ids[i] = b.ID
		have[b.ID] = true
	}

	now := s.Today()
	stats := scoring.Summarize(s.ledger.Snapshot(), now, s.loc)

	locked := []BadgeProgress{}
	for _, b := range badges.All() {
		if have[b.ID] {
			continue
		}
		locked = append(locked, BadgeProgress{Badge: b, Progress: badges.Progress(b, stats, now)})
	}

	points := badges.TotalPoints(ids)
	return Profile{
		Stats:  stats,
		Earned: earned,
		Locked: locked,
		Points: points,
		Level:  badges.UserLevel(points),
	}, nil
}

// History returns the last days calendar days of habitID, oldest first,
// ending today. Plans with a history window cap how far back it reaches.
func (s *Service) History(habitID string, days int) ([]HistoryDay, error) {
	if _, err := s.ledger.Habit(habitID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}
	sub, err := s.subs.Current()
	if err != nil {
		return nil, err
	}
	if window := subscription.EffectiveLimits(sub).HistoryDays; window != models.Unlimited && days > window+1 {
		days = window + 1
	}

	snap := s.ledger.Snapshot()
	today := s.Today()
	out := make([]HistoryDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := ledger.DateKey(today.AddDate(0, 0, -i))
		e, ok := snap.Entry(habitID, date)
		out = append(out, HistoryDay{
			Date:      date,
			Entry:     e,
			Logged:    ok,
			Qualifies: scoring.Qualifies(e.Percentage()),
		})
	}
	return out, nil
}
