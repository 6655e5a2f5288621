package scoring

import (
	"sort"
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/models"
)

// HabitStats is the per-habit summary shown next to a habit
type HabitStats struct {
	Streak           int `json:"streak"`
	LongestStreak    int `json:"longestStreak"`
	TotalPoints      int `json:"totalPoints"`
	TotalCompletions int `json:"totalCompletions"`
}

// SummarizeHabit folds one habit's history
func SummarizeHabit(s ledger.State, habitID string, today time.Time) HabitStats {
	out := HabitStats{
		Streak:        Streak(s, habitID, today),
		LongestStreak: LongestStreak(s, habitID),
	}
	for _, e := range s.Progress[habitID] {
		out.TotalPoints += e.PointValue()
		if e.Completed {
			out.TotalCompletions++
		}
	}
	return out
}

// Summarize folds habits, goals and progress into the badge engine's input.
// Completion counts include only entries marked completed. Time-of-day and
// weekday are read from each entry's last-write timestamp in loc.
//
// PerfectWeeks and Comebacks are coarse approximations: completions divided
// by habitCount*7, and the number of habits with a live streak.
func Summarize(s ledger.State, today time.Time, loc *time.Location) models.UserStats {
	if loc == nil {
		loc = time.Local
	}
	today = today.In(loc)

	stats := models.UserStats{
		CurrentStreaks:       make(map[string]int, len(s.Habits)),
		MaxStreaks:           make(map[string]int, len(s.Habits)),
		HabitsPerCategory:    make(map[string]int),
		TotalHabits:          len(s.Habits),
		CategoriesWithHabits: []string{},
	}

	category := make(map[string]string, len(s.Habits))
	seen := make(map[string]bool)
	for _, h := range s.Habits {
		category[h.ID] = h.Category
		if !seen[h.Category] {
			seen[h.Category] = true
			stats.CategoriesWithHabits = append(stats.CategoriesWithHabits, h.Category)
		}
	}
	sort.Strings(stats.CategoriesWithHabits)

	for habitID, days := range s.Progress {
		for _, e := range days {
			if !e.Completed {
				continue
			}
			stats.TotalCompletions++
			if cat, ok := category[habitID]; ok {
				stats.HabitsPerCategory[cat]++
			}

			at := e.WrittenAt(loc)
			if at.Hour() < constants.EarlyMorningHour {
				stats.EarlyMorningCompletions++
			}
			if at.Hour() >= constants.LateEveningHour {
				stats.LateEveningCompletions++
			}
			if wd := at.Weekday(); wd == time.Saturday || wd == time.Sunday {
				stats.WeekendCompletions++
			}
		}
	}

	for _, h := range s.Habits {
		current := Streak(s, h.ID, today)
		stats.CurrentStreaks[h.ID] = current
		stats.MaxStreaks[h.ID] = max(LongestStreak(s, h.ID), current)
		if current > 0 {
			stats.Comebacks++
		}
	}

	for _, g := range s.Goals {
		if GoalCompleted(s, g, today) {
			stats.CompletedGoals++
		}
	}

	if len(s.Habits) > 0 {
		stats.PerfectWeeks = stats.TotalCompletions / (len(s.Habits) * 7)
	}
	stats.LastMissedDays = MissedDays(s, today)

	return stats
}
