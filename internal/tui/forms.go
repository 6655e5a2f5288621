package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ratedzzz/small-steps/internal/constants"
)

type HabitFormModel struct {
	Title       string
	Description string
	Category    string
}

type JournalFormModel struct {
	Text   string
	Points string
	Mood   int
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := make([]huh.Option[string], len(constants.Categories))
	for i, c := range constants.Categories {
		options[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJournalForm creates a new form for a day's reflection
func NewJournalForm(fm *JournalFormModel, habitTitle string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Journal · "+habitTitle).
				Value(&fm.Text),
			huh.NewInput().
				Title(fmt.Sprintf("Points (%d-%d)", constants.MinPoints, constants.MaxPoints)).
				Value(&fm.Points).
				Validate(validatePoints),
			huh.NewSelect[int]().
				Title("Mood").
				Options(
					huh.NewOption("😞 1", 1),
					huh.NewOption("😕 2", 2),
					huh.NewOption("😐 3", 3),
					huh.NewOption("🙂 4", 4),
					huh.NewOption("😄 5", 5),
				).
				Value(&fm.Mood),
		),
	).WithTheme(huh.ThemeDracula())
}

func validatePoints(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if i < constants.MinPoints || i > constants.MaxPoints {
		return fmt.Errorf("points must be %d-%d", constants.MinPoints, constants.MaxPoints)
	}
	return nil
}

// points parses a validated points field; blank means the default
func (fm *JournalFormModel) points() *int {
	s := strings.TrimSpace(fm.Points)
	if s == "" {
		return nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &p
}
