package negotiation_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/events"
	"github.com/ledgersmith/parity/internal/modules/history"
	"github.com/ledgersmith/parity/internal/modules/negotiation"
	"github.com/ledgersmith/parity/internal/modules/progress"
	"github.com/ledgersmith/parity/internal/modules/settings"
	testingpkg "github.com/ledgersmith/parity/internal/testing"
)

type fixture struct {
	svc      *negotiation.Service
	settings *settings.Repository
	history  *history.Repository
	progress *progress.Service
	bus      *events.Bus
	cleanup  func()
}

func newFixture(t *testing.T) *fixture {
	leagueDB, leagueClean := testingpkg.NewTestDB(t, "league")
	cacheDB, cacheClean := testingpkg.NewTestDB(t, "cache")

	log := zerolog.Nop()
	bus := events.NewBus()
	settingsRepo := settings.NewRepository(leagueDB.Conn(), log)
	historyRepo := history.NewRepository(cacheDB.Conn(), log)
	progressSvc := progress.NewService(progress.NewRepository(leagueDB.Conn(), log), bus, log)
	gen := events.NewGenerator(42)

	return &fixture{
		svc:      negotiation.NewService(settingsRepo, historyRepo, progressSvc, gen, bus, log),
		settings: settingsRepo,
		history:  historyRepo,
		progress: progressSvc,
		bus:      bus,
		cleanup: func() {
			cacheClean()
			leagueClean()
		},
	}
}

func TestRunSolvesRookieLevel(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	controls := domain.Controls{SharingPercent: 54, Policy: domain.DistributionEqual}
	outcome, err := f.svc.Run(1, controls, nil)
	require.NoError(t, err)

	assert.True(t, outcome.Conditions.AllMet)
	assert.Equal(t, "NBA-ROOKIE-2025", outcome.ClaimCode)
	assert.NotEmpty(t, outcome.AttemptID)
	assert.Contains(t, outcome.CoachingTip, "Perfect balance")

	// Big-market satisfaction clears 70 but stays fragile at this sharing
	// level, so the win still carries a warning.
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "walking away")

	// The attempt landed in history.
	attempts, err := f.history.Recent(1, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, outcome.AttemptID, attempts[0].ID)
	assert.True(t, attempts[0].AllMet)

	// And the next level opened up.
	unlocked, err := f.progress.IsUnlocked(2)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestRunFailingRound(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	outcome, err := f.svc.Run(1, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual}, nil)
	require.NoError(t, err)

	assert.False(t, outcome.Conditions.AllMet)
	assert.Empty(t, outcome.ClaimCode)
	assert.Equal(t, 45.0, outcome.Conditions.Parity)
	assert.NotEmpty(t, outcome.CoachingTip)
}

func TestRunLockedScenario(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	_, err := f.svc.Run(2, domain.Controls{SharingPercent: 50}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")

	// Solving level 1 unlocks it.
	_, err = f.svc.Run(1, domain.Controls{SharingPercent: 54, Policy: domain.DistributionEqual}, nil)
	require.NoError(t, err)

	_, err = f.svc.Run(2, domain.Controls{SharingPercent: 50}, nil)
	assert.NoError(t, err)
}

func TestRunUnknownScenario(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	_, err := f.svc.Run(99, domain.Controls{}, nil)
	assert.Error(t, err)
}

func TestRunPublishesAllocation(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	var published []*events.AllocationComputedData
	f.bus.Subscribe(events.AllocationComputed, func(e *events.Event) {
		data, ok := e.Data.(*events.AllocationComputedData)
		require.True(t, ok)
		published = append(published, data)
	})

	_, err := f.svc.Run(1, domain.Controls{SharingPercent: 20, Policy: domain.DistributionEqual}, nil)
	require.NoError(t, err)

	require.Len(t, published, 1)
	assert.Equal(t, 1, published[0].ScenarioID)
	assert.Equal(t, 20.0, published[0].SharingPercent)
	assert.Equal(t, "equal", published[0].Policy)
}

func TestNormalizeControls(t *testing.T) {
	rookie, err := catalog.ByID(1)
	require.NoError(t, err)

	// The opening level locks both policy and tax.
	got := negotiation.NormalizeControls(rookie, domain.Controls{
		SharingPercent: 150,
		Policy:         domain.DistributionWeighted,
		TaxThreshold:   300,
	})
	assert.Equal(t, 100.0, got.SharingPercent)
	assert.Equal(t, rookie.DefaultPolicy, got.Policy)
	assert.Equal(t, 0.0, got.TaxThreshold)

	got = negotiation.NormalizeControls(rookie, domain.Controls{SharingPercent: -10})
	assert.Equal(t, 0.0, got.SharingPercent)

	// A tax-enabled level keeps the caller's choices, but never a negative
	// threshold.
	finals, err := catalog.ByID(4)
	require.NoError(t, err)
	got = negotiation.NormalizeControls(finals, domain.Controls{
		SharingPercent: 60,
		Policy:         domain.DistributionEqual,
		TaxThreshold:   -50,
	})
	assert.Equal(t, domain.DistributionEqual, got.Policy)
	assert.Equal(t, 0.0, got.TaxThreshold)

	got = negotiation.NormalizeControls(finals, domain.Controls{TaxThreshold: 275})
	assert.Equal(t, 275.0, got.TaxThreshold)
}

func TestRunAppliesRevenueEventToCopy(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	event := &domain.RevenueEvent{TeamName: "LA Lakers", Delta: -50, Headline: "LA Lakers arena flooded"}
	outcome, err := f.svc.Run(1, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual}, event)
	require.NoError(t, err)

	var lakers *domain.AllocationResult
	for i := range outcome.Results {
		if outcome.Results[i].Name == "LA Lakers" {
			lakers = &outcome.Results[i]
		}
	}
	require.NotNil(t, lakers)
	assert.Equal(t, 350.0, lakers.BaseRevenue)
	require.NotNil(t, outcome.RevenueEvent)
	assert.Equal(t, event, outcome.RevenueEvent)

	// The catalog roster itself is untouched.
	rookie, err := catalog.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, 400.0, rookie.Teams[0].BaseRevenue)
}

func TestRunIgnoresUnknownEventTeam(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	event := &domain.RevenueEvent{TeamName: "Seattle SuperSonics", Delta: 100}
	outcome, err := f.svc.Run(1, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual}, event)
	require.NoError(t, err)

	baseline, err := f.svc.Run(1, domain.Controls{SharingPercent: 0, Policy: domain.DistributionEqual}, nil)
	require.NoError(t, err)
	assert.Equal(t, baseline.Results, outcome.Results)
}

func TestRunSavedUsesStoredControls(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	saved := domain.Controls{SharingPercent: 54, Policy: domain.DistributionEqual}
	require.NoError(t, f.settings.SaveControls(1, saved))

	outcome, err := f.svc.RunSaved(1)
	require.NoError(t, err)
	assert.Equal(t, 54.0, outcome.Controls.SharingPercent)
	assert.True(t, outcome.Conditions.AllMet)
}

func TestRunSavedDefaults(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	// No saved controls: the scenario runs with zero sharing and its default
	// policy.
	outcome, err := f.svc.RunSaved(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.Controls.SharingPercent)
	assert.Equal(t, "equal", outcome.Controls.Policy)
}

func TestDrawEvent(t *testing.T) {
	f := newFixture(t)
	defer f.cleanup()

	drawn := 0
	f.bus.Subscribe(events.RevenueEventDrawn, func(e *events.Event) {
		drawn++
		data, ok := e.Data.(*events.RevenueEventDrawnData)
		require.True(t, ok)
		assert.Equal(t, 1, data.ScenarioID)
		assert.NotEmpty(t, data.Team)
	})

	event, err := f.svc.DrawEvent(1)
	require.NoError(t, err)
	assert.NotEmpty(t, event.TeamName)
	assert.NotZero(t, event.Delta)
	assert.NotEmpty(t, event.Headline)
	assert.Equal(t, 1, drawn)

	_, err = f.svc.DrawEvent(99)
	assert.Error(t, err)
}
