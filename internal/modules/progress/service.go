package progress

import (
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/events"
)

// Bonus achievement unlock counts.
const (
	bonusThreeLevels = 3
	bonusFiveLevels  = 5
)

// LevelStatus is the per-level view in the progress summary.
type LevelStatus struct {
	ScenarioID int    `json:"scenario_id"`
	Name       string `json:"name"`
	Completed  bool   `json:"completed"`
	Unlocked   bool   `json:"unlocked"`
	// ClaimCode is only populated for completed levels.
	ClaimCode string `json:"claim_code,omitempty"`
}

// Summary is the full progress report.
type Summary struct {
	Levels         []LevelStatus `json:"levels"`
	CompletedCount int           `json:"completed_count"`
	BonusCodes     []string      `json:"bonus_codes"`
}

// Service applies the unlock and bonus rules on top of the repository.
type Service struct {
	repo *Repository
	bus  *events.Bus
	log  zerolog.Logger
}

// NewService creates a new progress service.
func NewService(repo *Repository, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		log:  log.With().Str("service", "progress").Logger(),
	}
}

// Summary builds the full progress report. Level 1 is always unlocked; level
// n unlocks once level n-1 is completed. Bonus codes appear at 3 and 5
// completed levels.
func (s *Service) Summary() (Summary, error) {
	completions, err := s.repo.All()
	if err != nil {
		return Summary{}, err
	}

	completed := make(map[int]Completion, len(completions))
	for _, c := range completions {
		completed[c.ScenarioID] = c
	}

	scenarios := catalog.All()
	levels := make([]LevelStatus, 0, len(scenarios))
	for _, sc := range scenarios {
		status := LevelStatus{
			ScenarioID: sc.ID,
			Name:       sc.Name,
			Unlocked:   sc.ID == 1,
		}
		if _, ok := completed[sc.ID-1]; ok {
			status.Unlocked = true
		}
		if c, ok := completed[sc.ID]; ok {
			status.Completed = true
			status.Unlocked = true
			status.ClaimCode = c.ClaimCode
		}
		levels = append(levels, status)
	}

	summary := Summary{
		Levels:         levels,
		CompletedCount: len(completions),
		BonusCodes:     bonusCodes(len(completions)),
	}
	return summary, nil
}

// IsUnlocked reports whether a scenario is playable: level 1 always, later
// levels once their predecessor is completed.
func (s *Service) IsUnlocked(scenarioID int) (bool, error) {
	if scenarioID == 1 {
		return true, nil
	}
	return s.repo.IsCompleted(scenarioID - 1)
}

// Complete records a level completion and returns its claim code. Publishes
// a LevelCompleted event only on the first completion.
func (s *Service) Complete(scenarioID int) (string, error) {
	scenario, err := catalog.ByID(scenarioID)
	if err != nil {
		return "", err
	}

	already, err := s.repo.IsCompleted(scenarioID)
	if err != nil {
		return "", err
	}

	if err := s.repo.RecordCompletion(scenarioID, scenario.ClaimCode); err != nil {
		return "", err
	}

	if !already {
		s.log.Info().
			Int("scenario_id", scenarioID).
			Str("claim_code", scenario.ClaimCode).
			Msg("Level completed")
		if s.bus != nil {
			s.bus.Publish("progress", &events.LevelCompletedData{
				ScenarioID: scenarioID,
				ClaimCode:  scenario.ClaimCode,
			})
		}
	}

	return scenario.ClaimCode, nil
}

// Reset clears all progress and publishes a ProgressReset event.
func (s *Service) Reset() (int, error) {
	cleared, err := s.repo.Reset()
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("levels_cleared", cleared).Msg("Progress reset")
	if s.bus != nil {
		s.bus.Publish("progress", &events.ProgressResetData{LevelsCleared: cleared})
	}

	return cleared, nil
}

// bonusCodes returns the bonus achievement codes earned at a completion count.
func bonusCodes(completedCount int) []string {
	codes := []string{}
	if completedCount >= bonusThreeLevels {
		codes = append(codes, catalog.BonusThreeLevelsCode)
	}
	if completedCount >= bonusFiveLevels {
		codes = append(codes, catalog.BonusFiveLevelsCode)
	}
	return codes
}
