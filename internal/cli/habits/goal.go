package habits

import (
	"fmt"
	"strings"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a new goal."`
	List     GoalListCmd     `cmd:"" help:"List goals with progress."`
	Progress GoalProgressCmd `cmd:"" help:"Show a goal's progress and linked habits."`
	Update   GoalUpdateCmd   `cmd:"" help:"Update a goal."`
}

type GoalAddCmd struct {
	Title       string   `arg:"" help:"Goal title."`
	Description string   `help:"Goal description."`
	Category    string   `help:"Goal category." default:"General"`
	Target      *float64 `help:"Numeric target value."`
	Current     *float64 `help:"Current value toward the target."`
	Unit        string   `help:"Unit of the target value."`
	Deadline    string   `help:"Deadline (YYYY-MM-DD)."`
	Color       string   `help:"Display color (hex)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := svc.AddGoal(models.Goal{
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		TargetValue:  c.Target,
		CurrentValue: c.Current,
		Unit:         c.Unit,
		Deadline:     c.Deadline,
		Color:        c.Color,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added goal: %s (%s)\n", g.Title, g.ID)
	return nil
}

type GoalListCmd struct {
	All bool `help:"Include inactive goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	goals := svc.Ledger().Goals(c.All)
	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}
	for _, g := range goals {
		status, err := svc.GoalStatus(g.ID)
		if err != nil {
			return err
		}
		mark := " "
		if status.Completed {
			mark = "✓"
		}
		inactive := ""
		if !g.IsActive {
			inactive = " [INACTIVE]"
		}
		fmt.Printf("%s %s  %s %3d%%  (%d habit(s))%s\n", mark, g.ID, g.Title, status.Progress, len(status.Habits), inactive)
	}
	return nil
}

type GoalProgressCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(svc, c.Goal)
	if err != nil {
		return err
	}
	status, err := svc.GoalStatus(g.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d%% over the last 30 days\n", g.Title, status.Progress)
	if g.TargetValue != nil {
		current := 0.0
		if g.CurrentValue != nil {
			current = *g.CurrentValue
		}
		fmt.Printf("Target: %g/%g %s\n", current, *g.TargetValue, g.Unit)
	}
	if g.Deadline != "" {
		fmt.Printf("Deadline: %s\n", g.Deadline)
	}
	if status.Completed {
		fmt.Println("✓ Achieved")
	}
	if len(status.Habits) == 0 {
		fmt.Println("No linked habits. Use 'smallsteps habit link' to add some.")
		return nil
	}
	titles := make([]string, len(status.Habits))
	for i, h := range status.Habits {
		titles[i] = h.Title
	}
	fmt.Printf("Habits: %s\n", strings.Join(titles, ", "))
	return nil
}

type GoalUpdateCmd struct {
	Goal        string   `arg:"" help:"Goal ID or title."`
	Title       *string  `help:"New title."`
	Description *string  `help:"New description."`
	Category    *string  `help:"New category."`
	Target      *float64 `help:"New target value."`
	Current     *float64 `help:"New current value."`
	Unit        *string  `help:"New unit."`
	Deadline    *string  `help:"New deadline (YYYY-MM-DD, empty to clear)."`
	Color       *string  `help:"New color."`
	Active      *bool    `help:"Set active state." negatable:""`
}

func (c *GoalUpdateCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(svc, c.Goal)
	if err != nil {
		return err
	}
	updated, unlocked, err := svc.UpdateGoal(g.ID, models.GoalUpdate{
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		TargetValue:  c.Target,
		CurrentValue: c.Current,
		Unit:         c.Unit,
		Deadline:     c.Deadline,
		Color:        c.Color,
		IsActive:     c.Active,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated goal: %s\n", updated.Title)
	cli.PrintUnlocked(unlocked)
	return nil
}
