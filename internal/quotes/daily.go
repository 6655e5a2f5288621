package quotes

import (
	"time"

	"github.com/ratedzzz/small-steps/internal/models"
)

// TimeContext maps an hour of day to morning, afternoon or evening
func TimeContext(hour int) models.QuoteContext {
	switch {
	case hour < 12:
		return models.ContextMorning
	case hour < 18:
		return models.ContextAfternoon
	default:
		return models.ContextEvening
	}
}

// Candidates returns the quotes shown for ctx: those tagged with it plus
// the anytime quotes. No quote is tagged afternoon, so afternoon yields
// anytime quotes only.
func Candidates(ctx models.QuoteContext) []models.Quote {
	var out []models.Quote
	for _, q := range catalog {
		if q.Context == ctx || q.Context == models.ContextAnytime {
			out = append(out, q)
		}
	}
	return out
}

// Daily picks the quote for now. The choice is stable within a time
// context of a given day.
func Daily(now time.Time) models.Quote {
	candidates := Candidates(TimeContext(now.Hour()))
	if len(candidates) == 0 {
		candidates = catalog
	}
	seed := now.Day() + int(now.Month()) - 1
	return candidates[seed%len(candidates)]
}
