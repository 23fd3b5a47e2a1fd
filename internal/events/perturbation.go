package events

import (
	"fmt"
	"math/rand"

	"github.com/ledgersmith/parity/internal/domain"
)

// perturbation is one entry in the random-event deck. Deltas are in
// millions, relative to the struck team's base revenue.
type perturbation struct {
	delta    float64
	headline string
}

var perturbationDeck = []perturbation{
	{40, "%s land a national TV spotlight — revenue surges"},
	{25, "%s sign a record jersey sponsorship"},
	{15, "A playoff run packs the arena for %s"},
	{-15, "A star injury empties premium seats for %s"},
	{-25, "%s lose a regional broadcast deal"},
	{-40, "Arena renovations force %s into a smaller venue"},
}

// Generator draws random revenue events for a scenario. The zero value is
// not usable; construct with NewGenerator. The generator is part of the
// caller layer: the engine itself never schedules, expires or reverses an
// event.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible draws in tests
// and varied draws in production (pass e.g. time.Now().UnixNano()).
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Draw picks a random team from the scenario and a random entry from the
// deck, returning the event the caller may overlay onto its next
// allocation. Returns false when the roster is empty.
func (g *Generator) Draw(scenario domain.ScenarioConfig) (domain.RevenueEvent, bool) {
	if len(scenario.Teams) == 0 {
		return domain.RevenueEvent{}, false
	}
	team := scenario.Teams[g.rng.Intn(len(scenario.Teams))]
	p := perturbationDeck[g.rng.Intn(len(perturbationDeck))]
	return domain.RevenueEvent{
		TeamName: team.Name,
		Delta:    p.delta,
		Headline: fmt.Sprintf(p.headline, team.Name),
	}, true
}
