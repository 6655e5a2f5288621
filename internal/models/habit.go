package models

import "time"

// Habit represents a recurring activity tracked daily
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `json:"isActive"`
	GoalID      string    `json:"goalId,omitempty"`
}

// Goal is a higher-level objective that habits can be linked to
type Goal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	TargetValue  *float64  `json:"targetValue,omitempty"`
	CurrentValue *float64  `json:"currentValue,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	Deadline     string    `json:"deadline,omitempty"` // YYYY-MM-DD format
	CreatedAt    time.Time `json:"createdAt"`
	Color        string    `json:"color"`
	IsActive     bool      `json:"isActive"`
}

// HasTarget reports whether the goal tracks a numeric target
func (g Goal) HasTarget() bool {
	return g.TargetValue != nil && *g.TargetValue > 0
}

// TargetReached reports whether the current value meets a numeric target
func (g Goal) TargetReached() bool {
	if !g.HasTarget() || g.CurrentValue == nil {
		return false
	}
	return *g.CurrentValue >= *g.TargetValue
}

// GoalUpdate carries a partial goal edit. Nil fields are left untouched.
type GoalUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	TargetValue  *float64 `json:"targetValue,omitempty"`
	CurrentValue *float64 `json:"currentValue,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	Deadline     *string  `json:"deadline,omitempty"`
	Color        *string  `json:"color,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// HabitUpdate carries a partial habit edit. Nil fields are left untouched.
type HabitUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
