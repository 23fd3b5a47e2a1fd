package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/engine"
)

func rookieRoster() []domain.Team {
	return []domain.Team{
		{Name: "LA Lakers", Tier: domain.TierLarge, BaseRevenue: 400, MarketSize: 15, MinViableRevenue: 220},
		{Name: "Memphis Grizzlies", Tier: domain.TierSmall, BaseRevenue: 180, MarketSize: 4, MinViableRevenue: 200},
		{Name: "Phoenix Suns", Tier: domain.TierMid, BaseRevenue: 280, MarketSize: 10, MinViableRevenue: 210},
	}
}

func TestScoreEmptyResults(t *testing.T) {
	metrics := Score(nil)

	// No revenue data means zero parity, but empty tiers score 100: there is
	// nobody in them left to upset.
	assert.Equal(t, 0.0, metrics.Parity)
	assert.Equal(t, 100, metrics.BigSatisfaction)
	assert.Equal(t, 100, metrics.SmallViability)
}

func TestScoreRookieRound(t *testing.T) {
	results := engine.Allocate(rookieRoster(), domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual})
	metrics := Score(results)

	assert.InDelta(t, 53.4, metrics.Parity, 1e-9)
	assert.Equal(t, 94, metrics.BigSatisfaction)
	assert.Equal(t, 101, metrics.SmallViability)
}

func TestScoreParityIsFullForEqualRevenues(t *testing.T) {
	teams := []domain.Team{
		{Name: "A", Tier: domain.TierMid, BaseRevenue: 250, MarketSize: 8, MinViableRevenue: 200},
		{Name: "B", Tier: domain.TierMid, BaseRevenue: 250, MarketSize: 8, MinViableRevenue: 200},
	}
	results := engine.Allocate(teams, domain.Controls{SharingPercent: 40, Policy: domain.DistributionEqual})

	metrics := Score(results)
	assert.InDelta(t, 100.0, metrics.Parity, 1e-9)
}

func TestScoreCapsSmallViability(t *testing.T) {
	teams := []domain.Team{
		{Name: "Rich", Tier: domain.TierSmall, BaseRevenue: 500, MarketSize: 4, MinViableRevenue: 100},
		{Name: "Poor", Tier: domain.TierSmall, BaseRevenue: 80, MarketSize: 4, MinViableRevenue: 100},
	}
	results := engine.Allocate(teams, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual})

	// Rich sits at 500% of viable but counts as 120; Poor is at 80. A raw
	// mean would hide Poor entirely.
	metrics := Score(results)
	assert.Equal(t, 100, metrics.SmallViability)
}

func TestScoreIgnoresMidMarketsForTierMetrics(t *testing.T) {
	teams := []domain.Team{
		{Name: "Mid", Tier: domain.TierMid, BaseRevenue: 100, MarketSize: 8, MinViableRevenue: 300},
	}
	results := engine.Allocate(teams, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual})

	metrics := Score(results)
	assert.Equal(t, 100, metrics.BigSatisfaction)
	assert.Equal(t, 100, metrics.SmallViability)
	assert.InDelta(t, 100.0, metrics.Parity, 1e-9)
}

func TestEvaluateFlags(t *testing.T) {
	thresholds := domain.Thresholds{TargetParity: 70, MinBigSatisfaction: 70, MinSmallViability: 80}

	// No sharing at all: parity fails, the other two pass.
	results := engine.Allocate(rookieRoster(), domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual})
	v := Evaluate(results, thresholds)

	assert.InDelta(t, 45.0, v.Parity, 1e-9)
	assert.Equal(t, 100, v.BigSatisfaction)
	assert.Equal(t, 90, v.SmallViability)

	assert.False(t, v.ParityMet)
	assert.True(t, v.BigSatisfactionMet)
	assert.True(t, v.SmallViabilityMet)
	assert.False(t, v.AllMet)
	assert.Equal(t, 2, v.MetCount())
}

func TestEvaluateThresholdsAreInclusive(t *testing.T) {
	results := engine.Allocate(rookieRoster(), domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual})
	metrics := Score(results)

	exact := domain.Thresholds{
		TargetParity:       metrics.Parity,
		MinBigSatisfaction: metrics.BigSatisfaction,
		MinSmallViability:  metrics.SmallViability,
	}
	v := Evaluate(results, exact)
	assert.True(t, v.AllMet)
}

func TestEvaluateSolvedRookieLevel(t *testing.T) {
	thresholds := domain.Thresholds{TargetParity: 70, MinBigSatisfaction: 70, MinSmallViability: 80}

	results := engine.Allocate(rookieRoster(), domain.Controls{SharingPercent: 54, Policy: domain.DistributionEqual})
	v := Evaluate(results, thresholds)
	assert.True(t, v.AllMet, "metrics: %+v", v.LeagueMetrics)
}
