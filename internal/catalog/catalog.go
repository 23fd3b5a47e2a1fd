// Package catalog holds the static scenario definitions: five levels of
// increasing roster size and tightening victory thresholds. The catalog is
// constructed in memory once and treated as read-only; accessors hand out
// defensive copies so callers can apply revenue events without touching the
// source data.
//
// Content invariant (verified by catalog_test.go): every scenario is
// solvable — some combination of sharing percentage, allowed policy and tax
// threshold meets all three victory conditions.
package catalog

import (
	"fmt"

	"github.com/ledgersmith/parity/internal/domain"
)

// Bonus achievement codes unlocked by cumulative progress rather than a
// single level.
const (
	BonusThreeLevelsCode = "NBA-RISING-STAR-2025"
	BonusFiveLevelsCode  = "NBA-COMMISSIONER-MASTER-2025"
)

var scenarios = []domain.ScenarioConfig{
	{
		ID:          1,
		Name:        "Rookie League",
		Description: "Learn the basics of revenue sharing",
		Teams: []domain.Team{
			{Name: "LA Lakers", City: "Los Angeles", Tier: domain.TierLarge, BaseRevenue: 400, MarketSize: 15, MinViableRevenue: 220, Icon: "🏀"},
			{Name: "Memphis Grizzlies", City: "Memphis", Tier: domain.TierSmall, BaseRevenue: 180, MarketSize: 4, MinViableRevenue: 200, Icon: "🐻"},
			{Name: "Phoenix Suns", City: "Phoenix", Tier: domain.TierMid, BaseRevenue: 280, MarketSize: 10, MinViableRevenue: 210, Icon: "☀️"},
		},
		Thresholds:        domain.Thresholds{TargetParity: 70, MinBigSatisfaction: 70, MinSmallViability: 80},
		DefaultPolicy:     domain.DistributionEqual,
		AllowPolicyChoice: false,
		TaxEnabled:        false,
		ClaimCode:         "NBA-ROOKIE-2025",
	},
	{
		ID:          2,
		Name:        "All-Star Challenge",
		Description: "Balance big and small market teams",
		Teams: []domain.Team{
			{Name: "NY Knicks", City: "New York", Tier: domain.TierLarge, BaseRevenue: 450, MarketSize: 18, MinViableRevenue: 240, Icon: "🗽"},
			{Name: "Miami Heat", City: "Miami", Tier: domain.TierMid, BaseRevenue: 340, MarketSize: 11, MinViableRevenue: 230, Icon: "🔥"},
			{Name: "Sacramento Kings", City: "Sacramento", Tier: domain.TierSmall, BaseRevenue: 210, MarketSize: 4, MinViableRevenue: 230, Icon: "👑"},
			{Name: "Milwaukee Bucks", City: "Milwaukee", Tier: domain.TierSmall, BaseRevenue: 240, MarketSize: 6, MinViableRevenue: 250, Icon: "🦌"},
		},
		Thresholds:        domain.Thresholds{TargetParity: 75, MinBigSatisfaction: 70, MinSmallViability: 85},
		DefaultPolicy:     domain.DistributionEqual,
		AllowPolicyChoice: true,
		TaxEnabled:        false,
		ClaimCode:         "NBA-ALLSTAR-2025",
	},
	{
		ID:          3,
		Name:        "Conference Finals",
		Description: "Navigate luxury tax challenges",
		Teams: []domain.Team{
			{Name: "Golden State Warriors", City: "San Francisco", Tier: domain.TierLarge, BaseRevenue: 480, MarketSize: 20, MinViableRevenue: 260, Icon: "🌉"},
			{Name: "Chicago Bulls", City: "Chicago", Tier: domain.TierLarge, BaseRevenue: 420, MarketSize: 16, MinViableRevenue: 250, Icon: "🐂"},
			{Name: "Portland Trail Blazers", City: "Portland", Tier: domain.TierMid, BaseRevenue: 290, MarketSize: 9, MinViableRevenue: 230, Icon: "🌲"},
			{Name: "Oklahoma City Thunder", City: "OKC", Tier: domain.TierSmall, BaseRevenue: 200, MarketSize: 3, MinViableRevenue: 230, Icon: "⚡"},
			{Name: "New Orleans Pelicans", City: "New Orleans", Tier: domain.TierSmall, BaseRevenue: 215, MarketSize: 4, MinViableRevenue: 235, Icon: "🦅"},
		},
		Thresholds:        domain.Thresholds{TargetParity: 80, MinBigSatisfaction: 68, MinSmallViability: 90},
		DefaultPolicy:     domain.DistributionEqual,
		AllowPolicyChoice: true,
		TaxEnabled:        true,
		ClaimCode:         "NBA-CONFERENCE-2025",
	},
	{
		ID:          4,
		Name:        "NBA Finals",
		Description: "Master complex revenue rules",
		Teams: []domain.Team{
			{Name: "Boston Celtics", City: "Boston", Tier: domain.TierLarge, BaseRevenue: 440, MarketSize: 17, MinViableRevenue: 250, Icon: "🍀"},
			{Name: "Dallas Mavericks", City: "Dallas", Tier: domain.TierLarge, BaseRevenue: 410, MarketSize: 15, MinViableRevenue: 245, Icon: "🐴"},
			{Name: "Atlanta Hawks", City: "Atlanta", Tier: domain.TierMid, BaseRevenue: 320, MarketSize: 10, MinViableRevenue: 240, Icon: "🦅"},
			{Name: "Denver Nuggets", City: "Denver", Tier: domain.TierMid, BaseRevenue: 300, MarketSize: 8, MinViableRevenue: 235, Icon: "⛰️"},
			{Name: "Utah Jazz", City: "Salt Lake City", Tier: domain.TierSmall, BaseRevenue: 195, MarketSize: 3, MinViableRevenue: 235, Icon: "🎵"},
			{Name: "Indiana Pacers", City: "Indianapolis", Tier: domain.TierSmall, BaseRevenue: 225, MarketSize: 5, MinViableRevenue: 245, Icon: "🏁"},
		},
		Thresholds:        domain.Thresholds{TargetParity: 84, MinBigSatisfaction: 66, MinSmallViability: 95},
		DefaultPolicy:     domain.DistributionWeighted,
		AllowPolicyChoice: true,
		TaxEnabled:        true,
		ClaimCode:         "NBA-FINALS-2025",
	},
	{
		ID:          5,
		Name:        "Commissioner Legend",
		Description: "Ultimate balancing challenge",
		Teams: []domain.Team{
			{Name: "LA Clippers", City: "Los Angeles", Tier: domain.TierLarge, BaseRevenue: 430, MarketSize: 15, MinViableRevenue: 250, Icon: "🚢"},
			{Name: "Brooklyn Nets", City: "New York", Tier: domain.TierLarge, BaseRevenue: 445, MarketSize: 18, MinViableRevenue: 255, Icon: "🌃"},
			{Name: "Toronto Raptors", City: "Toronto", Tier: domain.TierLarge, BaseRevenue: 390, MarketSize: 14, MinViableRevenue: 245, Icon: "🦖"},
			{Name: "Philadelphia 76ers", City: "Philadelphia", Tier: domain.TierMid, BaseRevenue: 350, MarketSize: 12, MinViableRevenue: 250, Icon: "🔔"},
			{Name: "Washington Wizards", City: "Washington DC", Tier: domain.TierMid, BaseRevenue: 315, MarketSize: 9, MinViableRevenue: 240, Icon: "🪄"},
			{Name: "Charlotte Hornets", City: "Charlotte", Tier: domain.TierSmall, BaseRevenue: 190, MarketSize: 3, MinViableRevenue: 240, Icon: "🐝"},
			{Name: "San Antonio Spurs", City: "San Antonio", Tier: domain.TierSmall, BaseRevenue: 235, MarketSize: 6, MinViableRevenue: 250, Icon: "⚔️"},
			{Name: "Minnesota Timberwolves", City: "Minneapolis", Tier: domain.TierSmall, BaseRevenue: 205, MarketSize: 4, MinViableRevenue: 245, Icon: "🐺"},
		},
		Thresholds:        domain.Thresholds{TargetParity: 88, MinBigSatisfaction: 62, MinSmallViability: 100},
		DefaultPolicy:     domain.DistributionWeighted,
		AllowPolicyChoice: true,
		TaxEnabled:        true,
		ClaimCode:         "NBA-LEGEND-2025",
	},
}

// Count is the number of scenarios in the catalog.
func Count() int {
	return len(scenarios)
}

// All returns copies of every scenario, in level order.
func All() []domain.ScenarioConfig {
	out := make([]domain.ScenarioConfig, len(scenarios))
	for i, s := range scenarios {
		out[i] = copyScenario(s)
	}
	return out
}

// ByID returns a copy of the scenario with the given level number.
func ByID(id int) (domain.ScenarioConfig, error) {
	for _, s := range scenarios {
		if s.ID == id {
			return copyScenario(s), nil
		}
	}
	return domain.ScenarioConfig{}, fmt.Errorf("no scenario with id %d", id)
}

// copyScenario deep-copies the roster slice so callers can overlay revenue
// events without mutating the catalog.
func copyScenario(s domain.ScenarioConfig) domain.ScenarioConfig {
	teams := make([]domain.Team, len(s.Teams))
	copy(teams, s.Teams)
	s.Teams = teams
	return s
}
