package rewards

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ratedzzz/small-steps/internal/badges"
	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/models"
	tuibadges "github.com/ratedzzz/small-steps/internal/tui/components/badges"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type BadgesCmd struct {
	List  BadgesListCmd  `cmd:"" help:"List earned and locked badges." default:"1"`
	Check BadgesCheckCmd `cmd:"" help:"Re-check badge eligibility now."`
}

type BadgesListCmd struct {
	Category string `help:"Only show one category (streak, consistency, milestone, variety, special, social)."`
	Earned   bool   `help:"Only show earned badges."`
}

func (c *BadgesListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	p, err := svc.Profile()
	if err != nil {
		return err
	}

	keep := func(b models.Badge) bool {
		return c.Category == "" || string(b.Category) == c.Category
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Earned (%d/%d)", len(p.Earned), len(badges.All()))))
	for _, b := range p.Earned {
		if !keep(b) {
			continue
		}
		when := ""
		if b.UnlockedAt != nil {
			when = b.UnlockedAt.Format("2006-01-02")
		}
		line := fmt.Sprintf("  %s %-22s %-9s +%-3d %s", b.Icon, b.Name, b.Rarity, b.Points, when)
		fmt.Println(tuibadges.RarityStyle(b.Rarity).Render(line))
	}
	if c.Earned {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Locked"))
	for _, lb := range p.Locked {
		if !keep(lb.Badge) {
			continue
		}
		line := fmt.Sprintf("  %s %-22s %3.0f%%  %s", lb.Badge.Icon, lb.Badge.Name, lb.Progress, lb.Badge.Description)
		fmt.Println(lockedStyle.Render(line))
	}
	return nil
}

type BadgesCheckCmd struct{}

func (c *BadgesCheckCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	unlocked, err := svc.CheckBadges()
	if err != nil {
		return err
	}
	if len(unlocked) == 0 {
		fmt.Println("No new badges.")
		return nil
	}
	cli.PrintUnlocked(unlocked)
	return nil
}

type LevelCmd struct{}

func (c *LevelCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	points, lvl, err := svc.Level()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d: %s\n", lvl.Level, lvl.Title)
	if lvl.IsMax {
		fmt.Printf("%d points (max level)\n", points)
		return nil
	}
	fmt.Printf("%d points, %d to next level\n", points, lvl.NextLevelPoints-points)
	return nil
}
