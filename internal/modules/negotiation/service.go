// Package negotiation is the orchestration layer: it normalizes the caller's
// controls against a scenario's rules, runs the allocation engine and the
// evaluator, records the attempt, and advances progress when the level is
// solved. The engine and evaluator stay pure; every side effect lives here.
package negotiation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/engine"
	"github.com/ledgersmith/parity/internal/evaluation"
	"github.com/ledgersmith/parity/internal/events"
	"github.com/ledgersmith/parity/internal/modules/history"
	"github.com/ledgersmith/parity/internal/modules/progress"
	"github.com/ledgersmith/parity/internal/modules/settings"
	"github.com/ledgersmith/parity/internal/utils"
)

// Outcome is the full result of one negotiation round.
type Outcome struct {
	ScenarioID   int                       `json:"scenario_id"`
	Controls     ControlsView              `json:"controls"`
	Results      []domain.AllocationResult `json:"results"`
	Conditions   domain.VictoryConditions  `json:"conditions"`
	CoachingTip  string                    `json:"coaching_tip"`
	Warnings     []string                  `json:"warnings"`
	TotalRevenue float64                   `json:"total_revenue"`
	RevenueGap   float64                   `json:"revenue_gap"`
	RevenueEvent *domain.RevenueEvent      `json:"revenue_event,omitempty"`
	// ClaimCode is set when this round solved the level.
	ClaimCode string `json:"claim_code,omitempty"`
	AttemptID string `json:"attempt_id,omitempty"`
}

// ControlsView echoes back the controls the engine actually ran with, after
// normalization against the scenario's rules.
type ControlsView struct {
	SharingPercent float64 `json:"sharing_percent"`
	Policy         string  `json:"policy"`
	TaxThreshold   float64 `json:"tax_threshold"`
}

// Service runs negotiation rounds.
type Service struct {
	settingsRepo *settings.Repository
	historyRepo  *history.Repository
	progressSvc  *progress.Service
	eventGen     *events.Generator
	bus          *events.Bus
	log          zerolog.Logger
}

// NewService creates a new negotiation service.
func NewService(
	settingsRepo *settings.Repository,
	historyRepo *history.Repository,
	progressSvc *progress.Service,
	eventGen *events.Generator,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		historyRepo:  historyRepo,
		progressSvc:  progressSvc,
		eventGen:     eventGen,
		bus:          bus,
		log:          log.With().Str("service", "negotiation").Logger(),
	}
}

// NormalizeControls clamps the caller's controls to what the scenario allows:
// locked scenarios always run the default policy, tax-disabled scenarios run
// with no tax, and the sharing percentage is clamped to [0,100].
func NormalizeControls(scenario domain.ScenarioConfig, c domain.Controls) domain.Controls {
	c.SharingPercent = engine.Clamp(c.SharingPercent, 0, 100)
	if !scenario.AllowPolicyChoice {
		c.Policy = scenario.DefaultPolicy
	}
	if !scenario.TaxEnabled || c.TaxThreshold < 0 {
		c.TaxThreshold = 0
	}
	return c
}

// applyRevenueEvent overlays an event onto a copied roster. Unknown team
// names are ignored. Base revenue never drops below zero.
func applyRevenueEvent(teams []domain.Team, event *domain.RevenueEvent) []domain.Team {
	if event == nil {
		return teams
	}
	out := make([]domain.Team, len(teams))
	copy(out, teams)
	for i := range out {
		if out[i].Name == event.TeamName {
			out[i].BaseRevenue += event.Delta
			if out[i].BaseRevenue < 0 {
				out[i].BaseRevenue = 0
			}
		}
	}
	return out
}

// Run executes one negotiation round for a scenario. The round is evaluated,
// recorded in history, and, if all victory conditions hold, the level is
// marked complete and its claim code returned in the outcome.
func (s *Service) Run(scenarioID int, controls domain.Controls, event *domain.RevenueEvent) (Outcome, error) {
	defer utils.OperationTimer("negotiation_run", s.log)()

	scenario, err := catalog.ByID(scenarioID)
	if err != nil {
		return Outcome{}, err
	}

	unlocked, err := s.progressSvc.IsUnlocked(scenarioID)
	if err != nil {
		return Outcome{}, err
	}
	if !unlocked {
		return Outcome{}, fmt.Errorf("scenario %d is locked: complete level %d first", scenarioID, scenarioID-1)
	}

	controls = NormalizeControls(scenario, controls)
	teams := applyRevenueEvent(scenario.Teams, event)

	results := engine.Allocate(teams, controls)
	conditions := evaluation.Evaluate(results, scenario.Thresholds)
	tip := evaluation.CoachingTip(conditions, scenario.Thresholds)
	warnings := evaluation.Warnings(conditions.LeagueMetrics, scenario.Thresholds)
	totalRevenue := engine.TotalRevenue(results)
	revenueGap := engine.RevenueGap(results)

	outcome := Outcome{
		ScenarioID: scenarioID,
		Controls: ControlsView{
			SharingPercent: controls.SharingPercent,
			Policy:         controls.Policy.String(),
			TaxThreshold:   controls.TaxThreshold,
		},
		Results:      results,
		Conditions:   conditions,
		CoachingTip:  tip,
		Warnings:     warnings,
		TotalRevenue: totalRevenue,
		RevenueGap:   revenueGap,
		RevenueEvent: event,
	}

	snapshot := history.NewSnapshot(controls, results, conditions, totalRevenue, revenueGap, event)
	attemptID, err := s.historyRepo.Record(scenarioID, snapshot)
	if err != nil {
		// History is best-effort; the round itself succeeded.
		s.log.Warn().Err(err).Int("scenario_id", scenarioID).Msg("Failed to record attempt")
	} else {
		outcome.AttemptID = attemptID
	}

	if s.bus != nil {
		s.bus.Publish("negotiation", &events.AllocationComputedData{
			ScenarioID:     scenarioID,
			SharingPercent: controls.SharingPercent,
			Policy:         controls.Policy.String(),
			TaxThreshold:   controls.TaxThreshold,
			Parity:         conditions.Parity,
			AllMet:         conditions.AllMet,
		})
	}

	if conditions.AllMet {
		claimCode, err := s.progressSvc.Complete(scenarioID)
		if err != nil {
			s.log.Error().Err(err).Int("scenario_id", scenarioID).Msg("Failed to record completion")
		} else {
			outcome.ClaimCode = claimCode
		}
	}

	return outcome, nil
}

// RunSaved executes a round using the scenario's saved controls, used by the
// chart endpoint which has no request body.
func (s *Service) RunSaved(scenarioID int) (Outcome, error) {
	scenario, err := catalog.ByID(scenarioID)
	if err != nil {
		return Outcome{}, err
	}

	defaults := domain.Controls{Policy: scenario.DefaultPolicy}
	controls, err := s.settingsRepo.LoadControls(scenarioID, defaults)
	if err != nil {
		return Outcome{}, err
	}

	return s.Run(scenarioID, controls, nil)
}

// DrawEvent draws a random revenue event for a scenario and announces it on
// the bus. The caller decides whether to include it in the next round.
func (s *Service) DrawEvent(scenarioID int) (domain.RevenueEvent, error) {
	scenario, err := catalog.ByID(scenarioID)
	if err != nil {
		return domain.RevenueEvent{}, err
	}

	event, ok := s.eventGen.Draw(scenario)
	if !ok {
		return domain.RevenueEvent{}, fmt.Errorf("scenario %d has no teams to draw an event for", scenarioID)
	}

	if s.bus != nil {
		s.bus.Publish("negotiation", &events.RevenueEventDrawnData{
			ScenarioID: scenarioID,
			Team:       event.TeamName,
			Delta:      event.Delta,
			Headline:   event.Headline,
		})
	}

	return event, nil
}
