package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/models"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrGoalNotFound  = errors.New("goal not found")
	ErrInvalidDate   = errors.New("invalid date")
	ErrTitleRequired = errors.New("title is required")
)

// Ledger owns the habit, goal and progress state. All methods are safe for
// concurrent use; every mutation is saved before it becomes visible.
type Ledger struct {
	mu    sync.Mutex
	repo  Repository
	state State
	now   func() time.Time
	newID func() string
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides habit and goal ID generation
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New loads the repository state into a Ledger
func New(repo Repository, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	state, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	l.state = Normalize(state)
	return l, nil
}

// Snapshot returns a deep copy of the current state for the calculators
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// commit saves next and makes it current. Callers hold l.mu.
func (l *Ledger) commit(next State) error {
	if err := l.repo.Save(next); err != nil {
		return err
	}
	l.state = next
	return nil
}

// SetProgress records a completion percentage for habitID on date. The
// percentage is stored as given; completed is derived as percentage >= 100.
// Journal fields already on the entry are kept.
func (l *Ledger) SetProgress(habitID, date string, percentage int, notes string) (models.ProgressEntry, error) {
	if _, err := ParseDate(date, time.UTC); err != nil {
		return models.ProgressEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.state.Habit(habitID); !ok {
		return models.ProgressEntry{}, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	next := l.state.Clone()
	entry := next.Progress[habitID][date]
	entry.Completed = percentage >= constants.MaxPercentage
	entry.CompletionPercentage = percentage
	entry.Notes = notes
	entry.Timestamp = l.now().UnixMilli()
	putEntry(next.Progress, habitID, date, entry)

	if err := l.commit(next); err != nil {
		return models.ProgressEntry{}, err
	}
	return entry, nil
}

// SetJournal records a reflection for habitID on date. Nil points default
// to 0 and nil mood to 3. Completion fields already on the entry are kept;
// a fresh entry starts at 0% and not completed.
func (l *Ledger) SetJournal(habitID, date, text string, points, mood *int) (models.ProgressEntry, error) {
	if _, err := ParseDate(date, time.UTC); err != nil {
		return models.ProgressEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.state.Habit(habitID); !ok {
		return models.ProgressEntry{}, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	p := constants.DefaultPoints
	if points != nil {
		p = *points
	}
	m := constants.DefaultMood
	if mood != nil {
		m = *mood
	}

	next := l.state.Clone()
	entry := next.Progress[habitID][date]
	entry.JournalEntry = text
	entry.Points = &p
	entry.Mood = &m
	entry.Timestamp = l.now().UnixMilli()
	putEntry(next.Progress, habitID, date, entry)

	if err := l.commit(next); err != nil {
		return models.ProgressEntry{}, err
	}
	return entry, nil
}

// GetProgress returns the entry for (habitID, date); ok is false when absent
func (l *Ledger) GetProgress(habitID, date string) (models.ProgressEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Entry(habitID, date)
}

func putEntry(p Progress, habitID, date string, e models.ProgressEntry) {
	days, ok := p[habitID]
	if !ok {
		days = make(map[string]models.ProgressEntry)
		p[habitID] = days
	}
	days[date] = e
}

// AddHabit creates an active habit from h, ignoring any ID, creation time
// or active flag it carries
func (l *Ledger) AddHabit(h models.Habit) (models.Habit, error) {
	if strings.TrimSpace(h.Title) == "" {
		return models.Habit{}, ErrTitleRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if h.GoalID != "" {
		if _, ok := l.state.Goal(h.GoalID); !ok {
			return models.Habit{}, fmt.Errorf("%w: %s", ErrGoalNotFound, h.GoalID)
		}
	}

	h.ID = l.newID()
	h.CreatedAt = l.now().UTC()
	h.IsActive = true
	h = models.NormalizeHabit(h)

	next := l.state.Clone()
	next.Habits = append(next.Habits, h)
	if err := l.commit(next); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// UpdateHabit applies the non-nil fields of u to habit id
func (l *Ledger) UpdateHabit(id string, u models.HabitUpdate) (models.Habit, error) {
	return l.editHabit(id, func(h *models.Habit) error {
		if u.Title != nil {
			if strings.TrimSpace(*u.Title) == "" {
				return ErrTitleRequired
			}
			h.Title = *u.Title
		}
		if u.Description != nil {
			h.Description = *u.Description
		}
		if u.Color != nil {
			h.Color = *u.Color
		}
		if u.Category != nil {
			h.Category = *u.Category
		}
		if u.IsActive != nil {
			h.IsActive = *u.IsActive
		}
		return nil
	})
}

// DeactivateHabit soft-deletes a habit. Its progress history is kept.
func (l *Ledger) DeactivateHabit(id string) (models.Habit, error) {
	return l.editHabit(id, func(h *models.Habit) error {
		h.IsActive = false
		return nil
	})
}

// LinkHabitToGoal points habit habitID at goalID, replacing any previous link
func (l *Ledger) LinkHabitToGoal(habitID, goalID string) (models.Habit, error) {
	l.mu.Lock()
	_, ok := l.state.Goal(goalID)
	l.mu.Unlock()
	if !ok {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}
	return l.editHabit(habitID, func(h *models.Habit) error {
		h.GoalID = goalID
		return nil
	})
}

// UnlinkHabitFromGoal clears the habit's goal link
func (l *Ledger) UnlinkHabitFromGoal(habitID string) (models.Habit, error) {
	return l.editHabit(habitID, func(h *models.Habit) error {
		h.GoalID = ""
		return nil
	})
}

func (l *Ledger) editHabit(id string, edit func(*models.Habit) error) (models.Habit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()
	for i := range next.Habits {
		if next.Habits[i].ID != id {
			continue
		}
		if err := edit(&next.Habits[i]); err != nil {
			return models.Habit{}, err
		}
		next.Habits[i] = models.NormalizeHabit(next.Habits[i])
		if err := l.commit(next); err != nil {
			return models.Habit{}, err
		}
		return next.Habits[i], nil
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
}

// Habits returns habits in creation order. Inactive habits are included
// only when includeInactive is set.
func (l *Ledger) Habits(includeInactive bool) []models.Habit {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Habit, 0, len(l.state.Habits))
	for _, h := range l.state.Habits {
		if h.IsActive || includeInactive {
			out = append(out, h)
		}
	}
	return out
}

// Habit returns a single habit by ID
func (l *Ledger) Habit(id string) (models.Habit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.state.Habit(id)
	if !ok {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return h, nil
}

// HabitsForGoal returns the habits linked to goalID
func (l *Ledger) HabitsForGoal(goalID string) []models.Habit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.HabitsForGoal(goalID)
}

// AddGoal creates an active goal from g
func (l *Ledger) AddGoal(g models.Goal) (models.Goal, error) {
	if strings.TrimSpace(g.Title) == "" {
		return models.Goal{}, ErrTitleRequired
	}
	if g.Deadline != "" {
		if _, err := ParseDate(g.Deadline, time.UTC); err != nil {
			return models.Goal{}, fmt.Errorf("deadline: %w", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	g.ID = l.newID()
	g.CreatedAt = l.now().UTC()
	g.IsActive = true
	g = models.NormalizeGoal(g)

	next := l.state.Clone()
	next.Goals = append(next.Goals, g)
	if err := l.commit(next); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// UpdateGoal applies the non-nil fields of u to goal id
func (l *Ledger) UpdateGoal(id string, u models.GoalUpdate) (models.Goal, error) {
	if u.Deadline != nil && *u.Deadline != "" {
		if _, err := ParseDate(*u.Deadline, time.UTC); err != nil {
			return models.Goal{}, fmt.Errorf("deadline: %w", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()
	for i := range next.Goals {
		g := &next.Goals[i]
		if g.ID != id {
			continue
		}
		if u.Title != nil {
			if strings.TrimSpace(*u.Title) == "" {
				return models.Goal{}, ErrTitleRequired
			}
			g.Title = *u.Title
		}
		if u.Description != nil {
			g.Description = *u.Description
		}
		if u.Category != nil {
			g.Category = *u.Category
		}
		if u.TargetValue != nil {
			g.TargetValue = u.TargetValue
		}
		if u.CurrentValue != nil {
			g.CurrentValue = u.CurrentValue
		}
		if u.Unit != nil {
			g.Unit = *u.Unit
		}
		if u.Deadline != nil {
			g.Deadline = *u.Deadline
		}
		if u.Color != nil {
			g.Color = *u.Color
		}
		if u.IsActive != nil {
			g.IsActive = *u.IsActive
		}
		*g = models.NormalizeGoal(*g)
		if err := l.commit(next); err != nil {
			return models.Goal{}, err
		}
		return *g, nil
	}
	return models.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
}

// Goals returns goals in creation order
func (l *Ledger) Goals(includeInactive bool) []models.Goal {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Goal, 0, len(l.state.Goals))
	for _, g := range l.state.Goals {
		if g.IsActive || includeInactive {
			out = append(out, g)
		}
	}
	return out
}

// Goal returns a single goal by ID
func (l *Ledger) Goal(id string) (models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.state.Goal(id)
	if !ok {
		return models.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return g, nil
}
