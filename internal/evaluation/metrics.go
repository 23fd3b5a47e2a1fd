// Package evaluation derives league-wide metrics from an allocation and
// scores them against a scenario's victory thresholds. Like the engine it is
// pure: same results in, same verdict out.
package evaluation

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/engine"
)

// ViabilityCap limits each small market's viability ratio before averaging,
// so one overperforming team cannot mask others that are underwater.
const ViabilityCap = 120.0

// Score computes the three aggregate metrics from one allocation.
//
// Parity is the ratio of the smallest to largest final revenue as a
// percentage, one decimal. Big-market satisfaction is the mean satisfaction
// of large-market teams. Small-market viability is the mean of per-team
// viability ratios, each capped at ViabilityCap.
//
// The empty cases are asymmetric on purpose: no revenue data at all yields
// parity 0, while an empty tier yields 100 — there is nobody in that tier
// left to upset.
func Score(results []domain.AllocationResult) domain.LeagueMetrics {
	if len(results) == 0 {
		return domain.LeagueMetrics{Parity: 0, BigSatisfaction: 100, SmallViability: 100}
	}

	min, max := results[0].FinalRevenue, results[0].FinalRevenue
	var bigScores, smallRatios []float64
	for _, r := range results {
		if r.FinalRevenue < min {
			min = r.FinalRevenue
		}
		if r.FinalRevenue > max {
			max = r.FinalRevenue
		}
		switch r.Tier {
		case domain.TierLarge:
			bigScores = append(bigScores, float64(r.Satisfaction))
		case domain.TierSmall:
			ratio := engine.SafeRatio(r.FinalRevenue, r.MinViableRevenue, 0) * 100
			if ratio > ViabilityCap {
				ratio = ViabilityCap
			}
			smallRatios = append(smallRatios, ratio)
		case domain.TierMid:
			// Mid markets influence parity only.
		}
	}

	parity := engine.Round1(engine.SafeRatio(min, max, 0) * 100)

	bigSatisfaction := 100
	if len(bigScores) > 0 {
		bigSatisfaction = engine.RoundInt(stat.Mean(bigScores, nil))
	}

	smallViability := 100
	if len(smallRatios) > 0 {
		smallViability = engine.RoundInt(stat.Mean(smallRatios, nil))
	}

	return domain.LeagueMetrics{
		Parity:          parity,
		BigSatisfaction: bigSatisfaction,
		SmallViability:  smallViability,
	}
}

// Evaluate scores an allocation and compares it against the thresholds,
// producing the per-metric and combined pass flags.
func Evaluate(results []domain.AllocationResult, thresholds domain.Thresholds) domain.VictoryConditions {
	metrics := Score(results)
	v := domain.VictoryConditions{
		LeagueMetrics:      metrics,
		ParityMet:          metrics.Parity >= thresholds.TargetParity,
		BigSatisfactionMet: metrics.BigSatisfaction >= thresholds.MinBigSatisfaction,
		SmallViabilityMet:  metrics.SmallViability >= thresholds.MinSmallViability,
	}
	v.AllMet = v.ParityMet && v.BigSatisfactionMet && v.SmallViabilityMet
	return v
}
