package badges

import (
	"math"
	"time"

	"github.com/ratedzzz/small-steps/internal/models"
)

// metric reads the stat a criteria type is compared against
type metric func(models.UserStats, models.Criteria) int

var metrics = map[models.CriteriaType]metric{
	models.CriteriaTotalCompletions: func(s models.UserStats, c models.Criteria) int {
		if c.HabitCategory != "" {
			return s.HabitsPerCategory[c.HabitCategory]
		}
		return s.TotalCompletions
	},
	models.CriteriaStreak:          func(s models.UserStats, _ models.Criteria) int { return s.BestCurrentStreak() },
	models.CriteriaConsecutiveDays: func(s models.UserStats, _ models.Criteria) int { return s.BestMaxStreak() },
	models.CriteriaHabitCount:      func(s models.UserStats, _ models.Criteria) int { return s.TotalHabits },
	models.CriteriaGoalCompletion:  func(s models.UserStats, _ models.Criteria) int { return s.CompletedGoals },
	models.CriteriaPerfectWeek:     func(s models.UserStats, _ models.Criteria) int { return s.PerfectWeeks },
	models.CriteriaComeback:        func(s models.UserStats, _ models.Criteria) int { return s.Comebacks },
	models.CriteriaEarlyBird:       func(s models.UserStats, _ models.Criteria) int { return s.EarlyMorningCompletions },
	models.CriteriaNightOwl:        func(s models.UserStats, _ models.Criteria) int { return s.LateEveningCompletions },
	models.CriteriaWeekendWarrior:  func(s models.UserStats, _ models.Criteria) int { return s.WeekendCompletions },
	models.CriteriaVariety:         func(s models.UserStats, _ models.Criteria) int { return len(s.CategoriesWithHabits) },
}

// calendarRules hold the badges whose criteria depend on the date
var calendarRules = map[string]func(models.UserStats, time.Time) bool{
	"new_year_new_me": func(s models.UserStats, now time.Time) bool {
		return now.Month() == time.January && s.TotalHabits > 0
	},
	"summer_consistency": func(s models.UserStats, now time.Time) bool {
		m := now.Month()
		return m >= time.June && m <= time.August && s.TotalCompletions > 30
	},
}

// Eligible reports whether badge's criteria hold for stats at now
func Eligible(b models.Badge, stats models.UserStats, now time.Time) bool {
	if b.Criteria.Type == models.CriteriaCustom {
		rule, ok := calendarRules[b.ID]
		return ok && rule(stats, now)
	}
	m, ok := metrics[b.Criteria.Type]
	if !ok {
		return false
	}
	return m(stats, b.Criteria) >= b.Criteria.Value
}

// CheckEligibility returns the catalog badges not in earned whose criteria
// hold, each stamped with now. It has no side effects; persisting the
// union of earned IDs is the caller's job.
func CheckEligibility(stats models.UserStats, earned []string, now time.Time) []models.Badge {
	have := make(map[string]bool, len(earned))
	for _, id := range earned {
		have[id] = true
	}

	var unlocked []models.Badge
	for _, b := range catalog {
		if have[b.ID] || !Eligible(b, stats, now) {
			continue
		}
		at := now
		b.UnlockedAt = &at
		unlocked = append(unlocked, b)
	}
	return unlocked
}

// Progress returns how close stats are to earning b, 0-100. Calendar
// badges report 0 or 100.
func Progress(b models.Badge, stats models.UserStats, now time.Time) float64 {
	if b.Criteria.Type == models.CriteriaCustom {
		if Eligible(b, stats, now) {
			return 100
		}
		return 0
	}
	m, ok := metrics[b.Criteria.Type]
	if !ok || b.Criteria.Value <= 0 {
		return 0
	}
	return math.Min(100, float64(m(stats, b.Criteria))/float64(b.Criteria.Value)*100)
}
