package ledger

import (
	"fmt"
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/models"
)

// Progress maps habit ID -> date (YYYY-MM-DD) -> entry
type Progress map[string]map[string]models.ProgressEntry

// State is the persisted habit-storage document
type State struct {
	Habits   []models.Habit `json:"habits"`
	Goals    []models.Goal  `json:"goals"`
	Progress Progress       `json:"progress"`
}

// NewState returns an empty state with every collection allocated
func NewState() State {
	return State{
		Habits:   []models.Habit{},
		Goals:    []models.Goal{},
		Progress: Progress{},
	}
}

// Normalize fills missing collections and applies the model defaulting tables.
// It runs once when state crosses the storage boundary.
func Normalize(s State) State {
	out := State{
		Habits:   make([]models.Habit, 0, len(s.Habits)),
		Goals:    make([]models.Goal, 0, len(s.Goals)),
		Progress: s.Progress,
	}
	for _, h := range s.Habits {
		out.Habits = append(out.Habits, models.NormalizeHabit(h))
	}
	for _, g := range s.Goals {
		out.Goals = append(out.Goals, models.NormalizeGoal(g))
	}
	if out.Progress == nil {
		out.Progress = Progress{}
	}
	return out
}

// Clone returns a deep copy safe to hand to readers outside the ledger lock
func (s State) Clone() State {
	out := State{
		Habits:   append([]models.Habit(nil), s.Habits...),
		Goals:    append([]models.Goal(nil), s.Goals...),
		Progress: make(Progress, len(s.Progress)),
	}
	if out.Habits == nil {
		out.Habits = []models.Habit{}
	}
	if out.Goals == nil {
		out.Goals = []models.Goal{}
	}
	for habitID, days := range s.Progress {
		copied := make(map[string]models.ProgressEntry, len(days))
		for date, e := range days {
			copied[date] = e
		}
		out.Progress[habitID] = copied
	}
	return out
}

// Entry returns the ledger entry for (habitID, date). Absent entries report ok=false.
func (s State) Entry(habitID, date string) (models.ProgressEntry, bool) {
	e, ok := s.Progress[habitID][date]
	return e, ok
}

// Habit returns the habit with id
func (s State) Habit(id string) (models.Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Goal returns the goal with id
func (s State) Goal(id string) (models.Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// HabitsForGoal returns habits linked to goalID in creation order
func (s State) HabitsForGoal(goalID string) []models.Habit {
	var linked []models.Habit
	for _, h := range s.Habits {
		if h.GoalID == goalID {
			linked = append(linked, h)
		}
	}
	return linked
}

// ActiveHabitCount counts habits that have not been deactivated
func (s State) ActiveHabitCount() int {
	n := 0
	for _, h := range s.Habits {
		if h.IsActive {
			n++
		}
	}
	return n
}

// ActiveGoalCount counts goals that are still active
func (s State) ActiveGoalCount() int {
	n := 0
	for _, g := range s.Goals {
		if g.IsActive {
			n++
		}
	}
	return n
}

// DateKey formats t as a ledger date key in t's location
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a ledger date key in loc
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, date)
	}
	return t, nil
}
