package rewards

import (
	"fmt"
	"strings"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/subscription"
)

type SubscriptionCmd struct {
	Show SubscriptionShowCmd `cmd:"" help:"Show the current plan and limits." default:"1"`
	Set  SubscriptionSetCmd  `cmd:"" help:"Switch plan tier."`
}

func limit(n int) string {
	if n == models.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}

type SubscriptionShowCmd struct {
	Plans bool `help:"Also list every plan."`
}

func (c *SubscriptionShowCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	sub, err := svc.Subscription()
	if err != nil {
		return err
	}

	status := "active"
	if !sub.IsActive {
		status = "expired (free limits apply)"
	}
	fmt.Printf("Plan: %s (%s)\n", sub.Plan.Name, status)
	if sub.ExpiresAt != nil {
		fmt.Printf("Renews: %s\n", sub.ExpiresAt.Format("2006-01-02"))
	}

	limits := subscription.EffectiveLimits(sub)
	fmt.Printf("Habits: %s  Goals: %s  History: %s day(s)\n", limit(limits.MaxHabits), limit(limits.MaxGoals), limit(limits.HistoryDays))

	if !c.Plans {
		return nil
	}
	fmt.Println()
	for _, p := range subscription.Plans() {
		var on []string
		for _, f := range subscription.Features() {
			if p.Limits.Features[f] {
				on = append(on, string(f))
			}
		}
		fmt.Printf("%-8s $%.2f/mo  $%.2f/yr\n", p.Name, p.Price.Monthly, p.Price.Yearly)
		for _, line := range p.Features {
			fmt.Printf("  - %s\n", line)
		}
		if len(on) > 0 {
			fmt.Printf("  features: %s\n", strings.Join(on, ", "))
		}
	}
	return nil
}

type SubscriptionSetCmd struct {
	Tier string `arg:"" enum:"free,premium,pro" help:"Plan tier (free, premium, pro)."`
}

func (c *SubscriptionSetCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	sub, err := svc.SetSubscription(models.Tier(c.Tier))
	if err != nil {
		return err
	}
	fmt.Printf("✓ Switched to %s\n", sub.Plan.Name)
	return nil
}
