package scoring

import (
	"math"
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/models"
)

// GoalProgress returns the 0-100 completion of goalID: the plain average of
// linked habits' clamped percentages over the trailing 30 days (today
// included), rounded half away from zero. Missing days count as 0 and a goal
// with no linked habits is 0.
func GoalProgress(s ledger.State, goalID string, today time.Time) int {
	linked := s.HabitsForGoal(goalID)
	if len(linked) == 0 {
		return 0
	}

	total := 0
	for i := 0; i < constants.GoalWindowDays; i++ {
		date := ledger.DateKey(today.AddDate(0, 0, -i))
		for _, h := range linked {
			if e, ok := s.Entry(h.ID, date); ok {
				total += e.Percentage()
			}
		}
	}

	maxScore := len(linked) * constants.GoalWindowDays * constants.MaxPercentage
	return int(math.Round(float64(total) / float64(maxScore) * 100))
}

// GoalCompleted reports whether goal counts as achieved: its trailing
// progress is 100, or its numeric target has been reached
func GoalCompleted(s ledger.State, goal models.Goal, today time.Time) bool {
	return goal.TargetReached() || GoalProgress(s, goal.ID, today) == constants.MaxPercentage
}
