package models

import "time"

type BadgeCategory string

const (
	BadgeCategoryStreak      BadgeCategory = "streak"
	BadgeCategoryConsistency BadgeCategory = "consistency"
	BadgeCategoryMilestone   BadgeCategory = "milestone"
	BadgeCategoryVariety     BadgeCategory = "variety"
	BadgeCategorySpecial     BadgeCategory = "special"
	BadgeCategorySocial      BadgeCategory = "social"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type CriteriaType string

const (
	CriteriaStreak           CriteriaType = "streak"
	CriteriaTotalCompletions CriteriaType = "total_completions"
	CriteriaConsecutiveDays  CriteriaType = "consecutive_days"
	CriteriaHabitCount       CriteriaType = "habit_count"
	CriteriaGoalCompletion   CriteriaType = "goal_completion"
	CriteriaPerfectWeek      CriteriaType = "perfect_week"
	CriteriaComeback         CriteriaType = "comeback"
	CriteriaEarlyBird        CriteriaType = "early_bird"
	CriteriaNightOwl         CriteriaType = "night_owl"
	CriteriaWeekendWarrior   CriteriaType = "weekend_warrior"
	CriteriaVariety          CriteriaType = "variety"
	CriteriaCustom           CriteriaType = "custom"
)

// Criteria is the single rule a badge is earned by
type Criteria struct {
	Type          CriteriaType `json:"type"`
	Value         int          `json:"value"`
	HabitCategory string       `json:"habitCategory,omitempty"`
}

// Badge is an immutable catalog achievement
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Category    BadgeCategory `json:"category"`
	Rarity      Rarity        `json:"rarity"`
	Criteria    Criteria      `json:"criteria"`
	Points      int           `json:"points"`
	UnlockedAt  *time.Time    `json:"unlockedAt,omitempty"`
}

// UserStats is a derived snapshot fed to badge criteria. It is never persisted.
type UserStats struct {
	TotalCompletions        int            `json:"totalCompletions"`
	CurrentStreaks          map[string]int `json:"currentStreaks"`
	MaxStreaks              map[string]int `json:"maxStreaks"`
	HabitsPerCategory       map[string]int `json:"habitsPerCategory"`
	CompletedGoals          int            `json:"completedGoals"`
	EarlyMorningCompletions int            `json:"earlyMorningCompletions"`
	LateEveningCompletions  int            `json:"lateEveningCompletions"`
	WeekendCompletions      int            `json:"weekendCompletions"`
	PerfectWeeks            int            `json:"perfectWeeks"`
	Comebacks               int            `json:"comebacks"`
	TotalHabits             int            `json:"totalHabits"`
	CategoriesWithHabits    []string       `json:"categoriesWithHabits"`
	LastMissedDays          int            `json:"lastMissedDays"`
}

// BestCurrentStreak returns the highest current streak across habits
func (s UserStats) BestCurrentStreak() int {
	best := 0
	for _, n := range s.CurrentStreaks {
		if n > best {
			best = n
		}
	}
	return best
}

// BestMaxStreak returns the longest streak ever recorded across habits
func (s UserStats) BestMaxStreak() int {
	best := 0
	for _, n := range s.MaxStreaks {
		if n > best {
			best = n
		}
	}
	return best
}

// Level is a points tier
type Level struct {
	Level           int    `json:"level"`
	Title           string `json:"title"`
	NextLevelPoints int    `json:"nextLevelPoints"`
	IsMax           bool   `json:"isMax"`
}
