package badges

import (
	"math"

	"github.com/ratedzzz/small-steps/internal/models"
)

// MaxLevelPoints is the unreachable next-level threshold of the top tier
const MaxLevelPoints = math.MaxInt

type tier struct {
	min   int
	title string
}

var levels = []tier{
	{min: 0, title: "Beginner"},
	{min: 100, title: "Novice"},
	{min: 300, title: "Apprentice"},
	{min: 600, title: "Practitioner"},
	{min: 1000, title: "Expert"},
	{min: 1500, title: "Master"},
	{min: 2500, title: "Grand Master"},
	{min: 4000, title: "Legend"},
}

// TotalPoints sums catalog points of the earned IDs. Unknown IDs are
// ignored and duplicates count once.
func TotalPoints(earned []string) int {
	seen := make(map[string]bool, len(earned))
	total := 0
	for _, id := range earned {
		if seen[id] {
			continue
		}
		seen[id] = true
		if b, ok := Lookup(id); ok {
			total += b.Points
		}
	}
	return total
}

// UserLevel maps points to the highest tier whose minimum they reach
func UserLevel(points int) models.Level {
	idx := 0
	for i, t := range levels {
		if points < t.min {
			break
		}
		idx = i
	}

	lvl := models.Level{
		Level: idx + 1,
		Title: levels[idx].title,
	}
	if idx == len(levels)-1 {
		lvl.NextLevelPoints = MaxLevelPoints
		lvl.IsMax = true
	} else {
		lvl.NextLevelPoints = levels[idx+1].min
	}
	return lvl
}
