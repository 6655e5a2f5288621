package rewards

import (
	"fmt"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/quotes"
)

type QuoteCmd struct {
	Today QuoteTodayCmd `cmd:"" help:"Show today's quote." default:"1"`
	Like  QuoteLikeCmd  `cmd:"" help:"Like or unlike a quote."`
	Liked QuoteLikedCmd `cmd:"" help:"List liked quotes."`
}

type QuoteTodayCmd struct{}

func (c *QuoteTodayCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	q := svc.TodayQuote()
	liked, err := svc.Likes().IsLiked(q.ID)
	if err != nil {
		return err
	}

	heart := ""
	if liked {
		heart = " ♥"
	}
	fmt.Printf("“%s”\n  ~ %s%s\n", q.Text, q.Author, heart)
	fmt.Printf("(%s)\n", q.ID)
	return nil
}

type QuoteLikeCmd struct {
	ID string `arg:"" optional:"" help:"Quote ID. Defaults to today's quote."`
}

func (c *QuoteLikeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	id := c.ID
	if id == "" {
		id = svc.TodayQuote().ID
	}
	liked, err := svc.Likes().Toggle(id)
	if err != nil {
		return err
	}
	if liked {
		fmt.Printf("♥ Liked %s\n", id)
	} else {
		fmt.Printf("Unliked %s\n", id)
	}
	return nil
}

type QuoteLikedCmd struct{}

func (c *QuoteLikedCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ids, err := svc.Likes().List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No liked quotes yet.")
		return nil
	}
	for _, id := range ids {
		q, ok := quotes.Lookup(id)
		if !ok {
			continue
		}
		fmt.Printf("%s  “%s” ~ %s\n", q.ID, q.Text, q.Author)
	}
	return nil
}
