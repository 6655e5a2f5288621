package habits

import (
	"fmt"

	"github.com/ratedzzz/small-steps/internal/cli"
)

type ProgressCmd struct {
	Set ProgressSetCmd `cmd:"" help:"Record completion for a habit on a day."`
	Get ProgressGetCmd `cmd:"" help:"Show a habit's entry for a day."`
}

type ProgressSetCmd struct {
	Habit      string `arg:"" help:"Habit ID or title."`
	Percentage int    `arg:"" optional:"" help:"Completion percentage (100 marks the day complete)." default:"100"`
	Date       string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday'." default:"today"`
	Notes      string `help:"Optional note for this entry."`
}

func (c *ProgressSetCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(svc, c.Date)
	if err != nil {
		return err
	}

	entry, unlocked, err := svc.RecordProgress(h.ID, date, c.Percentage, c.Notes)
	if err != nil {
		return err
	}

	status := "in progress"
	if entry.Completed {
		status = "complete"
	}
	fmt.Printf("%s on %s: %d%% (%s)\n", h.Title, date, entry.CompletionPercentage, status)
	if streak, err := svc.Streak(h.ID); err == nil && streak > 0 {
		fmt.Printf("🔥 %d day streak\n", streak)
	}
	cli.PrintUnlocked(unlocked)
	return nil
}

type ProgressGetCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Date  string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday'." default:"today"`
}

func (c *ProgressGetCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(svc, c.Date)
	if err != nil {
		return err
	}

	entry, ok := svc.Ledger().GetProgress(h.ID, date)
	if !ok {
		fmt.Printf("%s on %s: nothing logged\n", h.Title, date)
		return nil
	}
	fmt.Printf("%s on %s: %d%%\n", h.Title, date, entry.Percentage())
	if entry.Notes != "" {
		fmt.Printf("  Notes:   %s\n", entry.Notes)
	}
	if entry.HasJournal() {
		fmt.Printf("  Journal: %s\n", entry.JournalEntry)
		fmt.Printf("  Points:  %d  Mood: %d/5\n", entry.PointValue(), entry.MoodValue())
	}
	return nil
}

type JournalCmd struct {
	Habit  string `arg:"" help:"Habit ID or title."`
	Text   string `arg:"" help:"Reflection text."`
	Date   string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday'." default:"today"`
	Points *int   `help:"Points for the day (0-10, default 0)."`
	Mood   *int   `help:"Mood for the day (1-5, default 3)."`
}

func (c *JournalCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(svc, c.Date)
	if err != nil {
		return err
	}

	entry, unlocked, err := svc.RecordJournal(h.ID, date, c.Text, c.Points, c.Mood)
	if err != nil {
		return err
	}
	fmt.Printf("Journal saved for %s on %s (points %d, mood %d/5)\n", h.Title, date, entry.PointValue(), entry.MoodValue())
	cli.PrintUnlocked(unlocked)
	return nil
}

type StreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit ID or title. Shows all active habits when omitted."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Habit != "" {
		h, err := cli.FindHabit(svc, c.Habit)
		if err != nil {
			return err
		}
		streak, err := svc.Streak(h.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d day(s)\n", h.Title, streak)
		return nil
	}

	habits := svc.Ledger().Habits(false)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	for _, h := range habits {
		streak, err := svc.Streak(h.ID)
		if err != nil {
			return err
		}
		fmt.Printf("🔥 %3d  %s\n", streak, h.Title)
	}
	return nil
}
