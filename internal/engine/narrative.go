package engine

import "github.com/ledgersmith/parity/internal/domain"

// Narrative quotes are selected from ordered bands, most favorable first.
// Large and mid markets band on the satisfaction score; small markets band
// on the ratio of final revenue to minimum viable revenue. Band edges are
// part of the product contract (the UI keys card styling off them), so the
// tables below must stay ordered and the thresholds must not drift.

var largeQuotes = []struct {
	minSatisfaction int
	quote           string
}{
	{85, "This is how you run a league. We're all in."},
	{70, "We can live with this split. Barely."},
	{55, "We earned this revenue. Why are we subsidizing our competition?"},
	{40, "Our owners are furious. This sharing level is confiscation."},
	{0, "You're bleeding us dry. Expect a call from our lawyers."},
}

var midQuotes = []struct {
	minSatisfaction int
	quote           string
}{
	{75, "A fair shake for the middle of the pack. We'll take it."},
	{55, "We're treading water here. Not thrilled, not leaving."},
	{0, "Squeezed from both ends. Who negotiates for us?"},
}

var smallQuotes = []struct {
	minViableRatio float64
	quote          string
}{
	{1.15, "We can finally build a contender instead of selling one."},
	{1.0, "We can keep the lights on and the roster together."},
	{0.9, "One bad season from insolvency. We need more help."},
	{0.8, "We can't compete at this revenue. Fans are drifting away."},
	{0, "Start drafting the relocation papers."},
}

// quoteFor picks the narrative line for one team from its tier's band table.
func quoteFor(t domain.Team, satisfaction int, finalRevenue float64) string {
	switch t.Tier {
	case domain.TierLarge:
		for _, band := range largeQuotes {
			if satisfaction >= band.minSatisfaction {
				return band.quote
			}
		}
	case domain.TierMid:
		for _, band := range midQuotes {
			if satisfaction >= band.minSatisfaction {
				return band.quote
			}
		}
	case domain.TierSmall:
		ratio := SafeRatio(finalRevenue, t.MinViableRevenue, 0)
		for _, band := range smallQuotes {
			if ratio >= band.minViableRatio {
				return band.quote
			}
		}
		return smallQuotes[len(smallQuotes)-1].quote
	}
	return ""
}
