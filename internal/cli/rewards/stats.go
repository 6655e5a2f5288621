package rewards

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ratedzzz/small-steps/internal/cli"
)

type StatsCmd struct {
	JSON bool `help:"Print the raw stats as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	stats := svc.Stats()

	if c.JSON {
		jsonBytes, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	fmt.Printf("Total completions:  %d\n", stats.TotalCompletions)
	fmt.Printf("Best streak now:    %d\n", stats.BestCurrentStreak())
	fmt.Printf("Best streak ever:   %d\n", stats.BestMaxStreak())
	fmt.Printf("Habits:             %d\n", stats.TotalHabits)
	fmt.Printf("Goals achieved:     %d\n", stats.CompletedGoals)
	fmt.Printf("Early mornings:     %d\n", stats.EarlyMorningCompletions)
	fmt.Printf("Late evenings:      %d\n", stats.LateEveningCompletions)
	fmt.Printf("Weekends:           %d\n", stats.WeekendCompletions)
	fmt.Printf("Perfect weeks:      %d\n", stats.PerfectWeeks)
	fmt.Printf("Comebacks:          %d\n", stats.Comebacks)
	fmt.Printf("Missed in a row:    %d\n", stats.LastMissedDays)
	if len(stats.CategoriesWithHabits) > 0 {
		fmt.Printf("Categories:         %s\n", strings.Join(stats.CategoriesWithHabits, ", "))
	}
	return nil
}
