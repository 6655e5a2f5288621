package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/models"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Deactivate a habit (history is kept)."`
	Activate   HabitActivateCmd   `cmd:"" help:"Reactivate a habit."`
	Link       HabitLinkCmd       `cmd:"" help:"Link a habit to a goal."`
	Unlink     HabitUnlinkCmd     `cmd:"" help:"Remove a habit's goal link."`
	Stats      HabitStatsCmd      `cmd:"" help:"Show streak and totals for a habit."`
	Log        HabitLogCmd        `cmd:"" help:"Show habit log (calendar history)."`
}

type HabitAddCmd struct {
	Title       string `arg:"" optional:"" help:"Habit title. Prompts interactively when omitted."`
	Description string `help:"Habit description."`
	Category    string `help:"Habit category." default:"General"`
	Color       string `help:"Display color (hex)."`
	Goal        string `help:"Goal ID or title to link to."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Title) == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	h := models.Habit{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Color:       c.Color,
	}
	if c.Goal != "" {
		g, err := cli.FindGoal(svc, c.Goal)
		if err != nil {
			return err
		}
		h.GoalID = g.ID
	}

	created, unlocked, err := svc.AddHabit(h)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", created.Title, created.ID)
	cli.PrintUnlocked(unlocked)
	return nil
}

func (c *HabitAddCmd) prompt() error {
	options := make([]huh.Option[string], len(constants.Categories))
	for i, cat := range constants.Categories {
		options[i] = huh.NewOption(cat, cat)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&c.Category),
		),
	).WithTheme(huh.ThemeDracula()).Run()
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := svc.Ledger().Habits(c.All)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		status := ""
		if !h.IsActive {
			status = " [INACTIVE]"
		}
		goal := ""
		if h.GoalID != "" {
			if g, err := svc.Ledger().Goal(h.GoalID); err == nil {
				goal = " → " + g.Title
			}
		}
		streak, _ := svc.Streak(h.ID)
		fmt.Printf("%s  %s [%s] 🔥%d%s%s\n", h.ID, h.Title, h.Category, streak, goal, status)
	}
	return nil
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeactivateCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	if _, err := svc.DeactivateHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deactivated habit: %s\n", h.Title)
	fmt.Println("(Progress history is kept. Use 'smallsteps habit activate' to undo)")
	return nil
}

type HabitActivateCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitActivateCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	active := true
	_, unlocked, err := svc.UpdateHabit(h.ID, models.HabitUpdate{IsActive: &active})
	if err != nil {
		return err
	}
	fmt.Printf("Reactivated habit: %s\n", h.Title)
	cli.PrintUnlocked(unlocked)
	return nil
}

type HabitLinkCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Goal  string `arg:"" help:"Goal ID or title."`
}

func (c *HabitLinkCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(svc, c.Goal)
	if err != nil {
		return err
	}
	_, unlocked, err := svc.LinkHabit(h.ID, g.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Linked %q to goal %q\n", h.Title, g.Title)
	cli.PrintUnlocked(unlocked)
	return nil
}

type HabitUnlinkCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitUnlinkCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	if _, err := svc.UnlinkHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Unlinked %q from its goal\n", h.Title)
	return nil
}

type HabitStatsCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitStatsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	stats, err := svc.HabitStats(h.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", h.Title)
	fmt.Printf("  Current streak:    %d day(s)\n", stats.Streak)
	fmt.Printf("  Longest streak:    %d day(s)\n", stats.LongestStreak)
	fmt.Printf("  Total completions: %d\n", stats.TotalCompletions)
	fmt.Printf("  Journal points:    %d\n", stats.TotalPoints)
	return nil
}

var (
	doneCell    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("■")
	partialCell = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("▣")
	missCell    = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("·")
	nameStyle   = lipgloss.NewStyle().Width(20).MaxWidth(20)
)

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only (ID or title)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var selected []models.Habit
	if c.Habit != "" {
		h, err := cli.FindHabit(svc, c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{h}
	} else {
		selected = svc.Ledger().Habits(false)
	}
	if len(selected) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for i, h := range selected {
		history, err := svc.History(h.ID, c.Days)
		if err != nil {
			return err
		}
		if i == 0 {
			fmt.Printf("Habit log (last %d days, ■ ≥%d%%  ▣ partial  · missed):\n\n", len(history), constants.StreakThreshold)
			fmt.Print(nameStyle.Render(""))
			for _, d := range history {
				fmt.Print(d.Date[8:] + " ")
			}
			fmt.Println()
		}

		fmt.Print(nameStyle.Render(h.Title))
		for _, d := range history {
			cell := missCell
			switch {
			case d.Qualifies:
				cell = doneCell
			case d.Entry.Percentage() > 0:
				cell = partialCell
			}
			fmt.Print(" " + cell + " ")
		}
		fmt.Println()
	}
	return nil
}
