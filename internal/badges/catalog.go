package badges

import (
	"sort"

	"github.com/ratedzzz/small-steps/internal/models"
)

// catalog is the fixed badge table, sorted by ID
var catalog = func() []models.Badge {
	all := []models.Badge{
		// Streak
		{ID: "streak_3", Name: "Getting Started", Description: "Maintain a 3-day streak", Icon: "🔥",
			Category: models.BadgeCategoryStreak, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 3}, Points: 25},
		{ID: "streak_7", Name: "One Week Wonder", Description: "Maintain a 7-day streak", Icon: "🌟",
			Category: models.BadgeCategoryStreak, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 7}, Points: 50},
		{ID: "streak_30", Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "🏆",
			Category: models.BadgeCategoryStreak, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 30}, Points: 200},
		{ID: "streak_100", Name: "Centurion", Description: "Maintain a 100-day streak", Icon: "👑",
			Category: models.BadgeCategoryStreak, Rarity: models.RarityEpic,
			Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 100}, Points: 500},
		{ID: "streak_365", Name: "Year-Long Legend", Description: "Maintain a 365-day streak", Icon: "🌈",
			Category: models.BadgeCategoryStreak, Rarity: models.RarityLegendary,
			Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 365}, Points: 1000},

		// Consistency
		{ID: "perfect_week", Name: "Perfect Week", Description: "Complete all habits for 7 consecutive days", Icon: "✨",
			Category: models.BadgeCategoryConsistency, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaPerfectWeek, Value: 7}, Points: 100},
		{ID: "comeback_kid", Name: "Comeback Kid", Description: "Get back on track after missing 3+ days", Icon: "💪",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaComeback, Value: 3}, Points: 75},

		// Milestone
		{ID: "first_step", Name: "First Step", Description: "Complete your first habit!", Icon: "👶",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 1}, Points: 10},
		{ID: "completions_50", Name: "Half Century", Description: "Complete 50 total habits", Icon: "🎯",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 50}, Points: 100},
		{ID: "completions_250", Name: "Quarter Master", Description: "Complete 250 total habits", Icon: "🏅",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 250}, Points: 300},
		{ID: "completions_1000", Name: "Thousand Club", Description: "Complete 1000 total habits", Icon: "💎",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityEpic,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 1000}, Points: 750},

		// Time of day
		{ID: "early_bird", Name: "Early Bird", Description: "Complete habits before 8 AM for 7 days", Icon: "🌅",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaEarlyBird, Value: 7}, Points: 100},
		{ID: "night_owl", Name: "Night Owl", Description: "Complete habits after 10 PM for 7 days", Icon: "🦉",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaNightOwl, Value: 7}, Points: 100},
		{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Complete habits on weekends for 4 consecutive weeks", Icon: "⚔️",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaWeekendWarrior, Value: 4}, Points: 150},

		// Variety
		{ID: "habit_collector", Name: "Habit Collector", Description: "Create 5 different habits", Icon: "📚",
			Category: models.BadgeCategoryVariety, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaHabitCount, Value: 5}, Points: 75},
		{ID: "well_rounded", Name: "Well Rounded", Description: "Have habits in 3 different categories", Icon: "🌍",
			Category: models.BadgeCategoryVariety, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaVariety, Value: 3}, Points: 125},

		// Category completions
		{ID: "fitness_fanatic", Name: "Fitness Fanatic", Description: "Complete 30 fitness habits", Icon: "💪",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 30, HabitCategory: "Health & Fitness"}, Points: 150},
		{ID: "bookworm", Name: "Bookworm", Description: "Complete 50 learning habits", Icon: "📖",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 50, HabitCategory: "Personal Development"}, Points: 150},
		{ID: "zen_master", Name: "Zen Master", Description: "Complete 30 mindfulness habits", Icon: "🧘",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaTotalCompletions, Value: 30, HabitCategory: "Self-Care"}, Points: 150},

		// Goals
		{ID: "goal_achiever", Name: "Goal Achiever", Description: "Complete your first goal", Icon: "🎉",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaGoalCompletion, Value: 1}, Points: 200},
		{ID: "serial_achiever", Name: "Serial Achiever", Description: "Complete 5 goals", Icon: "🏆",
			Category: models.BadgeCategoryMilestone, Rarity: models.RarityEpic,
			Criteria: models.Criteria{Type: models.CriteriaGoalCompletion, Value: 5}, Points: 500},

		// Calendar
		{ID: "new_year_new_me", Name: "New Year, New Me", Description: "Start a habit in January", Icon: "🎊",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityCommon,
			Criteria: models.Criteria{Type: models.CriteriaCustom, Value: 1}, Points: 50},
		{ID: "summer_consistency", Name: "Summer Consistency", Description: "Maintain habits through summer months", Icon: "☀️",
			Category: models.BadgeCategorySpecial, Rarity: models.RarityRare,
			Criteria: models.Criteria{Type: models.CriteriaCustom, Value: 1}, Points: 150},
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}()

// All returns a copy of the catalog sorted by ID
func All() []models.Badge {
	return append([]models.Badge(nil), catalog...)
}

// ByCategory returns the catalog badges in category
func ByCategory(category models.BadgeCategory) []models.Badge {
	var out []models.Badge
	for _, b := range catalog {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Lookup finds a badge by ID
func Lookup(id string) (models.Badge, bool) {
	i := sort.Search(len(catalog), func(i int) bool { return catalog[i].ID >= id })
	if i < len(catalog) && catalog[i].ID == id {
		return catalog[i], true
	}
	return models.Badge{}, false
}
