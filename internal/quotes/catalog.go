package quotes

import (
	"sort"

	"github.com/ratedzzz/small-steps/internal/models"
)

var catalog = func() []models.Quote {
	all := []models.Quote{
		{ID: "health_1", Author: "Jim Rohn", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"health", "fitness", "self-care"},
			Text: "Take care of your body. It's the only place you have to live."},
		{ID: "health_2", Author: "Eleanor Brown", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"health", "nutrition", "wellness"},
			Text: "Self-care is not selfish. You cannot serve from an empty vessel."},
		{ID: "fitness_1", Author: "Dr. Harvey Cushing", Mood: models.MoodEnergizing, Context: models.ContextMorning,
			Category: []string{"fitness", "happiness", "wellness"},
			Text: "No matter how old you are, no matter how much you weigh, you can still control the health of your body."},
		{ID: "fitness_2", Author: "Unknown", Mood: models.MoodMotivational, Context: models.ContextStruggle,
			Category: []string{"fitness", "progress"},
			Text: "Every workout is progress, no matter how small."},
		{ID: "growth_1", Author: "Helen Hayes", Mood: models.MoodInspirational, Context: models.ContextStruggle,
			Category: []string{"learning", "growth", "skill building"},
			Text: "The expert in anything was once a beginner."},
		{ID: "growth_2", Author: "Chinese Proverb", Mood: models.MoodReflective, Context: models.ContextEvening,
			Category: []string{"reflection", "action", "planning"},
			Text: "Be not afraid of growing slowly; be afraid only of standing still."},
		{ID: "learning_1", Author: "Earl Nightingale", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"learning", "knowledge", "growth"},
			Text: "One hour per day of study in your chosen field is all it takes. One hour per day of study will put you at the top of your field within three years. Within five years you’ll be a national authority. In seven years, you can be one of the best people in the world at what you do."},
		{ID: "reading_1", Author: "Joseph Addison", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"reading", "learning", "mind"},
			Text: "Reading is to the mind what exercise is to the body."},
		{ID: "habits_1", Author: "Aristotle", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"habits", "excellence", "consistency"},
			Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit."},
		{ID: "habits_2", Author: "Robert Collier", Mood: models.MoodMotivational, Context: models.ContextMorning,
			Category: []string{"success", "consistency", "effort"},
			Text: "Success is the sum of small efforts repeated day in and day out."},
		{ID: "habits_3", Author: "Lewis Gordon Pugh", Mood: models.MoodEnergizing, Context: models.ContextMorning,
			Category: []string{"starting", "action", "progress"},
			Text: "I just never, ever want to give up. Most battles are won in the 11th hour, and most people give up. If you give up once, it’s quite hard. If you give up a second time, it’s a little bit easier. Give up a third time, it’s starting to become a habit."},
		{ID: "consistency_1", Author: "Tony Robbins", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"consistency", "habits", "life"},
			Text: "It's not what we do once in a while that shapes our lives, but what we do consistently."},
		{ID: "productivity_1", Author: "David Allen", Mood: models.MoodMotivational, Context: models.ContextMorning,
			Category: []string{"productivity", "focus", "efficiency"},
			Text: "You can do anything, but not everything."},
		{ID: "productivity_2", Author: "Leo Babauta", Mood: models.MoodEnergizing, Context: models.ContextMorning,
			Category: []string{"action", "productivity", "starting"},
			Text: "Simplicity boils down to two steps: Identify the essential. Eliminate the rest."},
		{ID: "focus_1", Author: "Tony Robbins", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"focus", "energy", "attention"},
			Text: "Where focus goes, energy flows."},
		{ID: "mindfulness_1", Author: "Eckhart Tolle", Mood: models.MoodCalming, Context: models.ContextAnytime,
			Category: []string{"mindfulness", "presence", "meditation"},
			Text: "Wherever you are, be there totally."},
		{ID: "mindfulness_2", Author: "Buddha", Mood: models.MoodCalming, Context: models.ContextEvening,
			Category: []string{"peace", "mindfulness", "inner work"},
			Text: "Peace comes from within. Do not seek it without."},
		{ID: "stress_1", Author: "Marcus Aurelius", Mood: models.MoodCalming, Context: models.ContextStruggle,
			Category: []string{"mental strength", "control", "mindfulness"},
			Text: "You have power over your mind - not outside events. Realize this, and you will find strength."},
		{ID: "financial_1", Author: "Warren Buffett", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"financial", "saving", "money"},
			Text: "Do not save what is left after spending, but spend what is left after saving."},
		{ID: "financial_2", Author: "Robert Kiyosaki", Mood: models.MoodReflective, Context: models.ContextAnytime,
			Category: []string{"financial", "saving", "wealth"},
			Text: "It's not how much money you make, but how much money you keep."},
		{ID: "goals_1", Author: "Napoleon Hill", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"goals", "dreams", "planning"},
			Text: "A goal is a dream with a deadline."},
		{ID: "goals_2", Author: "Bill Copeland", Mood: models.MoodMotivational, Context: models.ContextAnytime,
			Category: []string{"goals", "purpose", "direction"},
			Text: "The trouble with not having a goal is that you can spend your life running up and down the field and never score."},
		{ID: "social_1", Author: "Tony Robbins", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"relationships", "social", "quality of life"},
			Text: "The quality of your life is the quality of your relationships."},
		{ID: "kindness_1", Author: "Aesop", Mood: models.MoodInspirational, Context: models.ContextAnytime,
			Category: []string{"kindness", "compassion", "social"},
			Text: "No act of kindness, no matter how small, is ever wasted."},
		{ID: "morning_1", Author: "Buddha", Mood: models.MoodEnergizing, Context: models.ContextMorning,
			Category: []string{"morning", "new beginnings", "present"},
			Text: "Every morning we are born again. What we do today is what matters most."},
		{ID: "morning_2", Author: "Abbie Hoffman", Mood: models.MoodEnergizing, Context: models.ContextMorning,
			Category: []string{"new beginnings", "opportunity", "present"},
			Text: "Today is the first day of the rest of your life."},
		{ID: "evening_1", Author: "Charles Dickens", Mood: models.MoodReflective, Context: models.ContextEvening,
			Category: []string{"gratitude", "reflection", "blessings"},
			Text: "Reflect upon your present blessings, of which every man has many."},
		{ID: "struggle_1", Author: "Japanese Proverb", Mood: models.MoodMotivational, Context: models.ContextStruggle,
			Category: []string{"resilience", "perseverance", "failure"},
			Text: "Fall seven times, stand up eight."},
		{ID: "struggle_2", Author: "Unknown", Mood: models.MoodMotivational, Context: models.ContextStruggle,
			Category: []string{"resilience", "comeback", "setback"},
			Text: "The comeback is always stronger than the setback."},
		{ID: "success_1", Author: "Winston Churchill", Mood: models.MoodInspirational, Context: models.ContextSuccess,
			Category: []string{"success", "failure", "courage"},
			Text: "Success is not final, failure is not fatal: it is the courage to continue that counts."},
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}()

// All returns a copy of the quote catalog sorted by ID
func All() []models.Quote {
	return append([]models.Quote(nil), catalog...)
}

// Lookup finds a quote by ID
func Lookup(id string) (models.Quote, bool) {
	i := sort.Search(len(catalog), func(i int) bool { return catalog[i].ID >= id })
	if i < len(catalog) && catalog[i].ID == id {
		return catalog[i], true
	}
	return models.Quote{}, false
}
