// Package engine implements the revenue-sharing allocation engine: a pure,
// deterministic mapping from a roster and control values to per-team
// financial outcomes. The engine holds no state, performs no I/O and is safe
// to call from any goroutine.
package engine

import "github.com/ledgersmith/parity/internal/domain"

// TaxRate is the fraction of the base-revenue overage collected from every
// team above the tax threshold.
const TaxRate = 0.4

// Allocate computes the outcome of one revenue-sharing round.
//
// The computation proceeds in two phases. League-wide figures first:
//
//  1. the shared pool, funded by every team proportionally to its base
//     revenue at the sharing percentage;
//  2. the tax pool, funded by teams whose base revenue exceeds the
//     threshold at TaxRate of the overage (threshold 0 disables the tax);
//  3. the weighted-policy normalizer over inverse market sizes;
//  4. the count of tax recipients (teams at or below the threshold).
//
// Then per team: revenue after the sharing deduction, the redistribution
// share, tax paid or received, the rounded final revenue and change, and the
// satisfaction-derived mood and quote.
//
// The tax pool is intentionally computed from base revenue, not post-sharing
// revenue; the two mechanisms are decoupled and the catalog thresholds are
// tuned against exactly this formula.
//
// Out-of-range controls are clamped: sharing to [0,100], a negative tax
// threshold to 0. Allocate is total — an empty roster yields an empty slice.
func Allocate(teams []domain.Team, c domain.Controls) []domain.AllocationResult {
	results := make([]domain.AllocationResult, 0, len(teams))
	if len(teams) == 0 {
		return results
	}

	sharing := Clamp(c.SharingPercent, 0, 100)
	taxThreshold := c.TaxThreshold
	if taxThreshold < 0 {
		taxThreshold = 0
	}

	sharedPool := 0.0
	for _, t := range teams {
		sharedPool += t.BaseRevenue * sharing / 100
	}

	taxPool := 0.0
	taxRecipients := 0
	if taxThreshold > 0 {
		for _, t := range teams {
			if t.BaseRevenue > taxThreshold {
				taxPool += (t.BaseRevenue - taxThreshold) * TaxRate
			} else {
				taxRecipients++
			}
		}
	}

	totalMarketSize := 0.0
	for _, t := range teams {
		totalMarketSize += t.MarketSize
	}
	normalizer := 0.0
	if c.Policy == domain.DistributionWeighted {
		for _, t := range teams {
			normalizer += inverseWeight(totalMarketSize, t.MarketSize)
		}
	}

	for _, t := range teams {
		afterSharing := t.BaseRevenue * (1 - sharing/100)

		var redistribution float64
		switch c.Policy {
		case domain.DistributionEqual:
			redistribution = sharedPool / float64(len(teams))
		case domain.DistributionWeighted:
			redistribution = sharedPool * SafeRatio(inverseWeight(totalMarketSize, t.MarketSize), normalizer, 0)
		}

		var taxPaid, taxReceived float64
		if taxThreshold > 0 {
			if t.BaseRevenue > taxThreshold {
				taxPaid = (t.BaseRevenue - taxThreshold) * TaxRate
			} else if taxRecipients > 0 {
				taxReceived = taxPool / float64(taxRecipients)
			}
		}

		finalRevenue := Round1(afterSharing + redistribution - taxPaid + taxReceived)
		satisfaction := satisfactionOf(t, finalRevenue, sharing)

		results = append(results, domain.AllocationResult{
			Team:           t,
			AfterSharing:   afterSharing,
			Redistribution: redistribution,
			TaxPaid:        taxPaid,
			TaxReceived:    taxReceived,
			FinalRevenue:   finalRevenue,
			Change:         Round1(finalRevenue - t.BaseRevenue),
			Satisfaction:   satisfaction,
			Mood:           MoodFor(satisfaction),
			Quote:          quoteFor(t, satisfaction, finalRevenue),
		})
	}

	return results
}

// inverseWeight gives smaller markets a larger share under the weighted
// policy: totalMarketSize − marketSize + 1.
func inverseWeight(totalMarketSize, marketSize float64) float64 {
	return totalMarketSize - marketSize + 1
}

// TotalRevenue sums the final revenues of one allocation.
func TotalRevenue(results []domain.AllocationResult) float64 {
	total := 0.0
	for _, r := range results {
		total += r.FinalRevenue
	}
	return total
}

// RevenueGap is the spread between the largest and smallest final revenue.
func RevenueGap(results []domain.AllocationResult) float64 {
	if len(results) == 0 {
		return 0
	}
	min, max := results[0].FinalRevenue, results[0].FinalRevenue
	for _, r := range results[1:] {
		if r.FinalRevenue < min {
			min = r.FinalRevenue
		}
		if r.FinalRevenue > max {
			max = r.FinalRevenue
		}
	}
	return max - min
}
