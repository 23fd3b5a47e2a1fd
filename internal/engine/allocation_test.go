package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersmith/parity/internal/domain"
)

// rookieRoster mirrors the three-team opening level: one large, one small,
// one mid market.
func rookieRoster() []domain.Team {
	return []domain.Team{
		{Name: "LA Lakers", Tier: domain.TierLarge, BaseRevenue: 400, MarketSize: 15, MinViableRevenue: 220},
		{Name: "Memphis Grizzlies", Tier: domain.TierSmall, BaseRevenue: 180, MarketSize: 4, MinViableRevenue: 200},
		{Name: "Phoenix Suns", Tier: domain.TierMid, BaseRevenue: 280, MarketSize: 10, MinViableRevenue: 210},
	}
}

func TestAllocateEmptyRoster(t *testing.T) {
	results := Allocate(nil, domain.Controls{SharingPercent: 50})
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestAllocateZeroSharingIsIdentity(t *testing.T) {
	results := Allocate(rookieRoster(), domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual})
	require.Len(t, results, 3)

	for _, r := range results {
		assert.InDelta(t, r.BaseRevenue, r.FinalRevenue, 1e-9, r.Name)
		assert.InDelta(t, 0, r.Change, 1e-9, r.Name)
		assert.Zero(t, r.TaxPaid)
		assert.Zero(t, r.TaxReceived)
	}
}

func TestAllocateEqualSplit(t *testing.T) {
	results := Allocate(rookieRoster(), domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual})
	require.Len(t, results, 3)

	// Pool is 20% of 860 = 172, split three ways.
	for _, r := range results {
		assert.InDelta(t, 172.0/3, r.Redistribution, 1e-9)
	}

	lakers, memphis, phoenix := results[0], results[1], results[2]

	assert.InDelta(t, 320.0, lakers.AfterSharing, 1e-9)
	assert.InDelta(t, 377.3, lakers.FinalRevenue, 1e-9)
	assert.InDelta(t, -22.7, lakers.Change, 1e-9)
	assert.Equal(t, 94, lakers.Satisfaction)
	assert.Equal(t, domain.MoodEcstatic, lakers.Mood)

	assert.InDelta(t, 201.3, memphis.FinalRevenue, 1e-9)
	assert.InDelta(t, 21.3, memphis.Change, 1e-9)
	assert.Equal(t, 100, memphis.Satisfaction)

	assert.InDelta(t, 281.3, phoenix.FinalRevenue, 1e-9)
	assert.InDelta(t, 1.3, phoenix.Change, 1e-9)
	assert.Equal(t, 100, phoenix.Satisfaction)
}

func TestAllocateConservesRevenue(t *testing.T) {
	teams := rookieRoster()
	baseTotal := 0.0
	for _, team := range teams {
		baseTotal += team.BaseRevenue
	}

	for _, sharing := range []float64{0, 10, 35, 50, 80, 100} {
		for _, policy := range []domain.DistributionPolicy{domain.DistributionEqual, domain.DistributionWeighted} {
			results := Allocate(teams, domain.Controls{SharingPercent: sharing, Policy: policy})
			total := 0.0
			for _, r := range results {
				total += r.FinalRevenue
			}
			// Each final revenue is rounded to one decimal, so the sum can
			// drift by at most 0.05 per team.
			assert.InDelta(t, baseTotal, total, 0.05*float64(len(teams)),
				"sharing=%v policy=%v", sharing, policy)
		}
	}
}

func TestAllocateWeightedFavorsSmallMarkets(t *testing.T) {
	teams := []domain.Team{
		{Name: "A", Tier: domain.TierSmall, BaseRevenue: 100, MarketSize: 3, MinViableRevenue: 100},
		{Name: "B", Tier: domain.TierLarge, BaseRevenue: 100, MarketSize: 15, MinViableRevenue: 100},
	}

	results := Allocate(teams, domain.Controls{SharingPercent: 30, Policy: domain.DistributionWeighted})
	require.Len(t, results, 2)

	// Total market size 18: A's inverse weight is 16, B's is 4, so A takes
	// 80% of the 60-unit pool.
	assert.InDelta(t, 118.0, results[0].FinalRevenue, 1e-9)
	assert.InDelta(t, 82.0, results[1].FinalRevenue, 1e-9)
	assert.Greater(t, results[0].FinalRevenue, results[1].FinalRevenue)
}

func TestAllocateClampsControls(t *testing.T) {
	teams := rookieRoster()

	over := Allocate(teams, domain.Controls{SharingPercent: 150, Policy: domain.DistributionEqual})
	atMax := Allocate(teams, domain.Controls{SharingPercent: 100, Policy: domain.DistributionEqual})
	require.Len(t, over, len(atMax))
	for i := range over {
		assert.InDelta(t, atMax[i].FinalRevenue, over[i].FinalRevenue, 1e-9)
	}

	under := Allocate(teams, domain.Controls{SharingPercent: -10, Policy: domain.DistributionEqual})
	for i, r := range under {
		assert.InDelta(t, teams[i].BaseRevenue, r.FinalRevenue, 1e-9)
	}

	negativeTax := Allocate(teams, domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual, TaxThreshold: -50})
	for _, r := range negativeTax {
		assert.Zero(t, r.TaxPaid)
		assert.Zero(t, r.TaxReceived)
	}
}

func TestAllocateLuxuryTax(t *testing.T) {
	teams := rookieRoster()

	results := Allocate(teams, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual, TaxThreshold: 250})
	require.Len(t, results, 3)

	lakers, memphis, phoenix := results[0], results[1], results[2]

	// Lakers owe 40% of (400-250), Phoenix 40% of (280-250); Memphis is the
	// sole recipient of the combined pool.
	assert.InDelta(t, 60.0, lakers.TaxPaid, 1e-9)
	assert.InDelta(t, 12.0, phoenix.TaxPaid, 1e-9)
	assert.InDelta(t, 72.0, memphis.TaxReceived, 1e-9)
	assert.Zero(t, memphis.TaxPaid)

	assert.InDelta(t, 340.0, lakers.FinalRevenue, 1e-9)
	assert.InDelta(t, 252.0, memphis.FinalRevenue, 1e-9)
	assert.InDelta(t, 268.0, phoenix.FinalRevenue, 1e-9)
}

func TestAllocateTaxDisabledAtZeroThreshold(t *testing.T) {
	results := Allocate(rookieRoster(), domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual, TaxThreshold: 0})
	for _, r := range results {
		assert.Zero(t, r.TaxPaid, r.Name)
		assert.Zero(t, r.TaxReceived, r.Name)
	}
}

// Raising the threshold can only lower what each payer owes, and so can only
// raise a payer's final revenue. Recipient payouts are not monotonic (the
// pool shrinks while the recipient count can grow), so no such claim is
// tested for them.
func TestAllocateTaxPaidMonotonicInThreshold(t *testing.T) {
	teams := rookieRoster()
	thresholds := []float64{150, 200, 250, 300, 350, 400, 450}

	var prev []domain.AllocationResult
	for _, threshold := range thresholds {
		results := Allocate(teams, domain.Controls{SharingPercent: 10, Policy: domain.DistributionEqual, TaxThreshold: threshold})

		for i, r := range results {
			if r.BaseRevenue <= threshold {
				assert.Zero(t, r.TaxPaid, "%s at threshold %v", r.Name, threshold)
			}
			if prev != nil {
				assert.LessOrEqual(t, r.TaxPaid, prev[i].TaxPaid,
					"%s tax paid rose when threshold rose to %v", r.Name, threshold)
				if r.TaxPaid > 0 {
					assert.GreaterOrEqual(t, r.FinalRevenue, prev[i].FinalRevenue,
						"%s final revenue fell when threshold rose to %v", r.Name, threshold)
				}
			}
		}
		prev = results
	}
}

func TestTotalRevenueAndGap(t *testing.T) {
	results := Allocate(rookieRoster(), domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual})

	assert.InDelta(t, 377.3+201.3+281.3, TotalRevenue(results), 1e-9)
	assert.InDelta(t, 377.3-201.3, RevenueGap(results), 1e-9)

	assert.Zero(t, TotalRevenue(nil))
	assert.Zero(t, RevenueGap(nil))
}
