package engine

import "github.com/ledgersmith/parity/internal/domain"

// Sharing levels above which large-market satisfaction takes penalties.
// Both penalties stack: at 60% sharing a large market loses
// (60−30)×0.5 + (60−50)×0.3 points on top of its retention ratio.
const (
	largePenaltyStart     = 30.0
	largePenaltyRate      = 0.5
	largePenaltyHardStart = 50.0
	largePenaltyHardRate  = 0.3
)

// smallBonusFactor: a small market clearing 110% of its minimum viable
// revenue earns a flat +10 satisfaction bonus.
const (
	smallBonusFactor = 1.1
	smallBonusPoints = 10.0
)

// satisfactionOf scores how well the outcome serves one team's
// category-specific incentive, on a 0-100 integer scale.
//
// Large markets care about retention (final vs base revenue) and resent high
// sharing percentages. Small markets care about viability (final vs minimum
// viable revenue). Mid markets average the two ratios with no bonuses or
// penalties. The rounded final revenue is used so scores agree with the
// figures reported to the caller.
func satisfactionOf(t domain.Team, finalRevenue, sharingPercent float64) int {
	var score float64
	switch t.Tier {
	case domain.TierLarge:
		score = SafeRatio(finalRevenue, t.BaseRevenue, 0) * 100
		if sharingPercent > largePenaltyStart {
			score -= (sharingPercent - largePenaltyStart) * largePenaltyRate
		}
		if sharingPercent > largePenaltyHardStart {
			score -= (sharingPercent - largePenaltyHardStart) * largePenaltyHardRate
		}
	case domain.TierSmall:
		score = SafeRatio(finalRevenue, t.MinViableRevenue, 0) * 100
		if finalRevenue > t.MinViableRevenue*smallBonusFactor {
			score += smallBonusPoints
		}
	case domain.TierMid:
		retention := SafeRatio(finalRevenue, t.BaseRevenue, 0) * 100
		viability := SafeRatio(finalRevenue, t.MinViableRevenue, 0) * 100
		score = (retention + viability) / 2
	}
	return RoundInt(Clamp(score, 0, 100))
}

// MoodFor maps a satisfaction score to its categorical mood. The bands are
// identical for all market tiers.
func MoodFor(satisfaction int) domain.Mood {
	switch {
	case satisfaction >= 90:
		return domain.MoodEcstatic
	case satisfaction >= 75:
		return domain.MoodPleased
	case satisfaction >= 60:
		return domain.MoodNeutral
	case satisfaction >= 45:
		return domain.MoodDispleased
	case satisfaction >= 30:
		return domain.MoodAngry
	}
	return domain.MoodFurious
}
