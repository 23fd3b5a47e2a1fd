// Package history records negotiation attempts in cache.db. Each attempt
// stores a compact msgpack snapshot of the controls and outcome so recent
// attempts can be replayed in the UI. History is ephemeral: deleting
// cache.db loses nothing the player cares about.
package history

import (
	"time"

	"github.com/ledgersmith/parity/internal/domain"
)

// Snapshot is the persisted body of one attempt, serialized with msgpack.
type Snapshot struct {
	Controls     controlsSnapshot          `msgpack:"controls" json:"controls"`
	Results      []domain.AllocationResult `msgpack:"results" json:"results"`
	Conditions   domain.VictoryConditions  `msgpack:"conditions" json:"conditions"`
	TotalRevenue float64                   `msgpack:"total_revenue" json:"total_revenue"`
	RevenueGap   float64                   `msgpack:"revenue_gap" json:"revenue_gap"`
	RevenueEvent *domain.RevenueEvent      `msgpack:"revenue_event,omitempty" json:"revenue_event,omitempty"`
}

// controlsSnapshot stores the policy as a string so snapshots stay readable
// if the enum ordering ever changes.
type controlsSnapshot struct {
	SharingPercent float64 `msgpack:"sharing_percent" json:"sharing_percent"`
	Policy         string  `msgpack:"policy" json:"policy"`
	TaxThreshold   float64 `msgpack:"tax_threshold" json:"tax_threshold"`
}

// Attempt is one recorded negotiation attempt.
type Attempt struct {
	ID         string    `json:"id"`
	ScenarioID int       `json:"scenario_id"`
	AllMet     bool      `json:"all_met"`
	Parity     float64   `json:"parity"`
	CreatedAt  time.Time `json:"created_at"`
	Snapshot   Snapshot  `json:"snapshot"`
}

// NewSnapshot builds the persisted body from an allocation round.
func NewSnapshot(controls domain.Controls, results []domain.AllocationResult, conditions domain.VictoryConditions, totalRevenue, revenueGap float64, event *domain.RevenueEvent) Snapshot {
	return Snapshot{
		Controls: controlsSnapshot{
			SharingPercent: controls.SharingPercent,
			Policy:         controls.Policy.String(),
			TaxThreshold:   controls.TaxThreshold,
		},
		Results:      results,
		Conditions:   conditions,
		TotalRevenue: totalRevenue,
		RevenueGap:   revenueGap,
		RevenueEvent: event,
	}
}
