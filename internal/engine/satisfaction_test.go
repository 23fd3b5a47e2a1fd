package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgersmith/parity/internal/domain"
)

func TestSatisfactionLargeMarketPenaltiesStack(t *testing.T) {
	team := domain.Team{Tier: domain.TierLarge, BaseRevenue: 400, MinViableRevenue: 220}

	// Full retention, no sharing: perfect score.
	assert.Equal(t, 100, satisfactionOf(team, 400, 0))

	// Full retention at 40% sharing: only the first penalty applies.
	assert.Equal(t, 95, satisfactionOf(team, 400, 40))

	// Full retention at 60% sharing: (60-30)*0.5 + (60-50)*0.3 = 18 points.
	assert.Equal(t, 82, satisfactionOf(team, 400, 60))

	// Penalties start strictly above 30.
	assert.Equal(t, 100, satisfactionOf(team, 400, 30))
}

func TestSatisfactionSmallMarketBonus(t *testing.T) {
	team := domain.Team{Tier: domain.TierSmall, BaseRevenue: 180, MinViableRevenue: 200}

	// Exactly viable: ratio 100, no bonus (bonus needs > 110% of viable).
	assert.Equal(t, 100, satisfactionOf(team, 200, 0))

	// 90% of viable.
	assert.Equal(t, 90, satisfactionOf(team, 180, 0))

	// Above 110% of viable the flat bonus lands, then the clamp holds at 100.
	assert.Equal(t, 100, satisfactionOf(team, 230, 0))

	// At exactly 110% there is no bonus.
	assert.Equal(t, 100, satisfactionOf(team, 220, 0))
}

func TestSatisfactionMidMarketAveragesRatios(t *testing.T) {
	team := domain.Team{Tier: domain.TierMid, BaseRevenue: 300, MinViableRevenue: 200}

	// Retention 80%, viability 120%: mean 100.
	assert.Equal(t, 100, satisfactionOf(team, 240, 50))

	// Retention 50%, viability 75%: mean 62.5 rounds half away from zero —
	// sharing level is irrelevant for mid markets.
	assert.Equal(t, 63, satisfactionOf(team, 150, 90))
}

func TestSatisfactionClampsToRange(t *testing.T) {
	small := domain.Team{Tier: domain.TierSmall, BaseRevenue: 100, MinViableRevenue: 100}
	assert.Equal(t, 100, satisfactionOf(small, 500, 0))
	assert.Equal(t, 0, satisfactionOf(small, -50, 0))

	large := domain.Team{Tier: domain.TierLarge, BaseRevenue: 100, MinViableRevenue: 100}
	assert.Equal(t, 0, satisfactionOf(large, 0, 100))
}

func TestSatisfactionZeroDenominators(t *testing.T) {
	large := domain.Team{Tier: domain.TierLarge, BaseRevenue: 0}
	assert.Equal(t, 0, satisfactionOf(large, 50, 0))

	small := domain.Team{Tier: domain.TierSmall, MinViableRevenue: 0}
	assert.Equal(t, 0, satisfactionOf(small, 50, 0))
}

func TestMoodBands(t *testing.T) {
	cases := []struct {
		satisfaction int
		mood         domain.Mood
	}{
		{100, domain.MoodEcstatic},
		{90, domain.MoodEcstatic},
		{89, domain.MoodPleased},
		{75, domain.MoodPleased},
		{74, domain.MoodNeutral},
		{60, domain.MoodNeutral},
		{59, domain.MoodDispleased},
		{45, domain.MoodDispleased},
		{44, domain.MoodAngry},
		{30, domain.MoodAngry},
		{29, domain.MoodFurious},
		{0, domain.MoodFurious},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.mood, MoodFor(tc.satisfaction), "satisfaction %d", tc.satisfaction)
	}
}

func TestQuoteBands(t *testing.T) {
	large := domain.Team{Tier: domain.TierLarge, BaseRevenue: 400}
	assert.Equal(t, largeQuotes[0].quote, quoteFor(large, 85, 400))
	assert.Equal(t, largeQuotes[1].quote, quoteFor(large, 84, 400))
	assert.Equal(t, largeQuotes[4].quote, quoteFor(large, 10, 400))

	mid := domain.Team{Tier: domain.TierMid, BaseRevenue: 300}
	assert.Equal(t, midQuotes[0].quote, quoteFor(mid, 75, 300))
	assert.Equal(t, midQuotes[1].quote, quoteFor(mid, 60, 300))
	assert.Equal(t, midQuotes[2].quote, quoteFor(mid, 0, 300))

	// Small markets band on the viability ratio, not the satisfaction score.
	small := domain.Team{Tier: domain.TierSmall, MinViableRevenue: 200}
	assert.Equal(t, smallQuotes[0].quote, quoteFor(small, 0, 230)) // ratio 1.15
	assert.Equal(t, smallQuotes[1].quote, quoteFor(small, 0, 200)) // ratio 1.0
	assert.Equal(t, smallQuotes[2].quote, quoteFor(small, 0, 185)) // ratio 0.925
	assert.Equal(t, smallQuotes[3].quote, quoteFor(small, 0, 170)) // ratio 0.85
	assert.Equal(t, smallQuotes[4].quote, quoteFor(small, 0, 100)) // ratio 0.5

	// Even a pathological negative revenue gets the bottom-band quote.
	assert.Equal(t, smallQuotes[4].quote, quoteFor(small, 0, -10))
}
