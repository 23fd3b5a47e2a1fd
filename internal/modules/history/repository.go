package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultRecentLimit caps how many attempts the recent listing returns when
// the caller doesn't say.
const DefaultRecentLimit = 20

// Repository handles attempt history database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "history").Logger(),
	}
}

// Record stores one attempt and returns its generated id.
func (r *Repository) Record(scenarioID int, snapshot Snapshot) (string, error) {
	blob, err := msgpack.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal attempt snapshot: %w", err)
	}

	id := uuid.New().String()
	_, err = r.db.Exec(`
		INSERT INTO attempts (id, scenario_id, all_met, parity, snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, scenarioID, boolToInt(snapshot.Conditions.AllMet), snapshot.Conditions.Parity, blob, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to insert attempt: %w", err)
	}

	return id, nil
}

// Recent returns the newest attempts, optionally filtered by scenario.
// Pass scenarioID 0 for all scenarios. Limit <= 0 uses DefaultRecentLimit.
func (r *Repository) Recent(scenarioID, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT id, scenario_id, all_met, parity, snapshot, created_at
		FROM attempts
	`
	args := []interface{}{}
	if scenarioID > 0 {
		query += " WHERE scenario_id = ?"
		args = append(args, scenarioID)
	}
	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var allMet int
		var blob []byte
		var ts int64
		if err := rows.Scan(&a.ID, &a.ScenarioID, &allMet, &a.Parity, &blob, &ts); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan attempt row")
			continue
		}
		if err := msgpack.Unmarshal(blob, &a.Snapshot); err != nil {
			r.log.Warn().Err(err).Str("id", a.ID).Msg("Failed to unmarshal attempt snapshot")
			continue
		}
		a.AllMet = allMet != 0
		a.CreatedAt = time.Unix(ts, 0)
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempts: %w", err)
	}

	return out, nil
}

// Count returns the total number of recorded attempts.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM attempts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return n, nil
}

// Prune deletes attempts older than the cutoff. Returns how many were removed.
func (r *Repository) Prune(olderThan time.Time) (int, error) {
	result, err := r.db.Exec("DELETE FROM attempts WHERE created_at < ?", olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune attempts: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
