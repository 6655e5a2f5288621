package models

import (
	"strings"

	"github.com/ratedzzz/small-steps/internal/constants"
)

// FieldDefault fills one field when it is missing
type FieldDefault[T any] struct {
	Field string
	Apply func(*T)
}

// HabitDefaults is the full defaulting table for habits.
var HabitDefaults = []FieldDefault[Habit]{
	{Field: "category", Apply: func(h *Habit) { h.Category = orDefault(h.Category, constants.DefaultCategory) }},
	{Field: "color", Apply: func(h *Habit) { h.Color = orDefault(h.Color, constants.DefaultHabitColor) }},
}

// GoalDefaults is the full defaulting table for goals.
var GoalDefaults = []FieldDefault[Goal]{
	{Field: "category", Apply: func(g *Goal) { g.Category = orDefault(g.Category, constants.DefaultCategory) }},
	{Field: "color", Apply: func(g *Goal) { g.Color = orDefault(g.Color, constants.DefaultGoalColor) }},
}

// NormalizeHabit applies HabitDefaults and returns the result
func NormalizeHabit(h Habit) Habit {
	for _, d := range HabitDefaults {
		d.Apply(&h)
	}
	return h
}

// NormalizeGoal applies GoalDefaults and returns the result
func NormalizeGoal(g Goal) Goal {
	for _, d := range GoalDefaults {
		d.Apply(&g)
	}
	return g
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
