// Package domain contains the pure data model for the league revenue-sharing
// engine. Types here carry no behavior beyond construction helpers and
// formatting; all arithmetic lives in the engine and evaluation packages.
package domain

import "fmt"

// MarketTier classifies a team by the size of its home market.
// It is a closed enumeration: every switch over MarketTier in this codebase
// handles all three values, so adding a tier is a compile-visible change.
type MarketTier int

const (
	TierSmall MarketTier = iota
	TierMid
	TierLarge
)

// String returns the lowercase tier name used in API payloads.
func (t MarketTier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMid:
		return "mid"
	case TierLarge:
		return "large"
	}
	return fmt.Sprintf("MarketTier(%d)", int(t))
}

// ParseMarketTier converts an API string to a MarketTier.
func ParseMarketTier(s string) (MarketTier, error) {
	switch s {
	case "small":
		return TierSmall, nil
	case "mid":
		return TierMid, nil
	case "large":
		return TierLarge, nil
	}
	return TierSmall, fmt.Errorf("unknown market tier %q", s)
}

// DistributionPolicy selects how the shared pool is split among teams.
type DistributionPolicy int

const (
	// DistributionEqual splits the pool evenly across all teams.
	DistributionEqual DistributionPolicy = iota
	// DistributionWeighted splits the pool by inverse market size, so
	// smaller markets receive a larger share.
	DistributionWeighted
)

// String returns the lowercase policy name used in API payloads and storage.
func (p DistributionPolicy) String() string {
	switch p {
	case DistributionEqual:
		return "equal"
	case DistributionWeighted:
		return "weighted"
	}
	return fmt.Sprintf("DistributionPolicy(%d)", int(p))
}

// ParseDistributionPolicy converts an API string to a DistributionPolicy.
func ParseDistributionPolicy(s string) (DistributionPolicy, error) {
	switch s {
	case "equal":
		return DistributionEqual, nil
	case "weighted":
		return DistributionWeighted, nil
	}
	return DistributionEqual, fmt.Errorf("unknown distribution policy %q", s)
}

// Team is one participant in a scenario. Teams are immutable scenario input;
// a revenue event produces a modified copy at the call boundary, never a
// mutation of catalog data. Revenue figures are in millions.
type Team struct {
	Name             string     `json:"name"`
	City             string     `json:"city"`
	Tier             MarketTier `json:"-"`
	BaseRevenue      float64    `json:"base_revenue"`
	MarketSize       float64    `json:"market_size"`
	MinViableRevenue float64    `json:"min_viable_revenue"`
	Icon             string     `json:"icon,omitempty"`
}

// Controls are the negotiation levers the caller owns. They are passed
// explicitly on every call; the engine retains no state between calls.
type Controls struct {
	SharingPercent float64            `json:"sharing_percent"`
	Policy         DistributionPolicy `json:"-"`
	// TaxThreshold is the revenue level above which the surcharge applies.
	// Zero disables the tax entirely.
	TaxThreshold float64 `json:"tax_threshold"`
}

// Mood is the categorical reaction derived from a team's satisfaction score.
type Mood string

const (
	MoodEcstatic   Mood = "ecstatic"
	MoodPleased    Mood = "pleased"
	MoodNeutral    Mood = "neutral"
	MoodDispleased Mood = "displeased"
	MoodAngry      Mood = "angry"
	MoodFurious    Mood = "furious"
)

// AllocationResult is the per-team outcome of one allocation call.
// FinalRevenue and Change are rounded to one decimal; Satisfaction is an
// integer in [0,100]. Results have no identity beyond the call that
// produced them.
type AllocationResult struct {
	Team
	AfterSharing   float64 `json:"after_sharing"`
	Redistribution float64 `json:"redistribution"`
	TaxPaid        float64 `json:"tax_paid"`
	TaxReceived    float64 `json:"tax_received"`
	FinalRevenue   float64 `json:"final_revenue"`
	Change         float64 `json:"change"`
	Satisfaction   int     `json:"satisfaction"`
	Mood           Mood    `json:"mood"`
	Quote          string  `json:"quote"`
}

// Thresholds are a scenario's victory targets.
type Thresholds struct {
	// TargetParity is the minimum acceptable ratio of smallest to largest
	// final revenue, as a percentage.
	TargetParity float64 `json:"target_parity"`
	// MinBigSatisfaction is the minimum mean satisfaction of large-market
	// teams.
	MinBigSatisfaction int `json:"min_big_satisfaction"`
	// MinSmallViability is the minimum mean viability of small-market teams.
	MinSmallViability int `json:"min_small_viability"`
}

// LeagueMetrics are the three aggregate scores derived from one allocation.
type LeagueMetrics struct {
	Parity          float64 `json:"parity"`
	BigSatisfaction int     `json:"big_satisfaction"`
	SmallViability  int     `json:"small_viability"`
}

// VictoryConditions pairs the metrics with their pass/fail flags. They are
// recomputed on every allocation and never persisted.
type VictoryConditions struct {
	LeagueMetrics
	ParityMet          bool `json:"parity_met"`
	BigSatisfactionMet bool `json:"big_satisfaction_met"`
	SmallViabilityMet  bool `json:"small_viability_met"`
	AllMet             bool `json:"all_met"`
}

// MetCount returns how many of the three conditions passed.
func (v VictoryConditions) MetCount() int {
	n := 0
	for _, met := range []bool{v.ParityMet, v.BigSatisfactionMet, v.SmallViabilityMet} {
		if met {
			n++
		}
	}
	return n
}

// ScenarioConfig describes one level: its roster, targets and controls.
// Constructed once from the static catalog and never mutated.
type ScenarioConfig struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Teams             []Team `json:"teams"`
	Thresholds        `json:"thresholds"`
	DefaultPolicy     DistributionPolicy `json:"-"`
	AllowPolicyChoice bool               `json:"allow_policy_choice"`
	TaxEnabled        bool               `json:"tax_enabled"`
	// ClaimCode is an opaque completion token, passed through to the caller
	// when the scenario is solved.
	ClaimCode string `json:"-"`
}

// RevenueEvent is a transient perturbation applied by the caller to a single
// team's base revenue before allocation. The engine never sees events; the
// service layer applies them to a copied roster.
type RevenueEvent struct {
	TeamName string  `json:"team"`
	Delta    float64 `json:"delta"`
	Headline string  `json:"headline,omitempty"`
}
