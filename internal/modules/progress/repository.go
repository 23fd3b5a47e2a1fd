// Package progress tracks which levels the player has completed and which
// claim codes they have earned. Completions live in league.db and survive
// restarts; replaying a completed level never changes its first-completion
// record.
package progress

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Completion is one completed level.
type Completion struct {
	ScenarioID  int       `json:"scenario_id"`
	ClaimCode   string    `json:"claim_code"`
	CompletedAt time.Time `json:"completed_at"`
}

// Repository handles completion database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new progress repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "progress").Logger(),
	}
}

// RecordCompletion records the first completion of a scenario.
// Idempotent: a replay of an already-completed level is a no-op and the
// original completed_at is preserved.
func (r *Repository) RecordCompletion(scenarioID int, claimCode string) error {
	_, err := r.db.Exec(`
		INSERT INTO completions (scenario_id, claim_code, completed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(scenario_id) DO NOTHING
	`, scenarioID, claimCode, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record completion for scenario %d: %w", scenarioID, err)
	}
	return nil
}

// IsCompleted reports whether a scenario has ever been completed.
func (r *Repository) IsCompleted(scenarioID int) (bool, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM completions WHERE scenario_id = ?", scenarioID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check completion for scenario %d: %w", scenarioID, err)
	}
	return n > 0, nil
}

// All returns every completion, ordered by scenario id.
func (r *Repository) All() ([]Completion, error) {
	rows, err := r.db.Query(`
		SELECT scenario_id, claim_code, completed_at
		FROM completions
		ORDER BY scenario_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var ts int64
		if err := rows.Scan(&c.ScenarioID, &c.ClaimCode, &ts); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan completion row")
			continue
		}
		c.CompletedAt = time.Unix(ts, 0)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completions: %w", err)
	}

	return out, nil
}

// Count returns the number of completed levels.
func (r *Repository) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM completions").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return n, nil
}

// Reset deletes all completions. Returns how many were cleared.
func (r *Repository) Reset() (int, error) {
	result, err := r.db.Exec("DELETE FROM completions")
	if err != nil {
		return 0, fmt.Errorf("failed to reset progress: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
