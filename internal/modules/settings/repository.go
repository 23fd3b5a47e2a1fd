// Package settings provides persistence for player-adjustable negotiation
// controls. Settings are key-value pairs in league.db; control values are
// scoped per scenario so each level remembers its own slider positions.
package settings

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/domain"
)

// Repository handles settings database operations.
// Settings are stored as strings and converted to appropriate types when
// retrieved. The repository provides type-safe getters and setters.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new settings repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "settings").Logger(),
	}
}

// Get retrieves a setting value by key.
// Returns nil if the setting doesn't exist (not an error).
func (r *Repository) Get(key string) (*string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &value, nil
}

// Set sets a setting value.
// Uses an upsert so insert and update are a single operation.
func (r *Repository) Set(key string, value string) error {
	now := time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, now)
	return err
}

// GetAll retrieves all settings as a map.
func (r *Repository) GetAll() (map[string]string, error) {
	rows, err := r.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to get all settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan setting row")
			continue
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return result, nil
}

// GetFloat retrieves a setting value as float64.
// Returns defaultValue if the setting doesn't exist or parsing fails.
func (r *Repository) GetFloat(key string, defaultValue float64) (float64, error) {
	value, err := r.Get(key)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}

	floatVal, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("key", key).
			Str("value", *value).
			Msg("Failed to parse float setting")
		return defaultValue, nil
	}

	return floatVal, nil
}

// SetFloat sets a setting value as float64.
func (r *Repository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// Delete deletes a setting.
// Idempotent - does not error if the setting doesn't exist.
func (r *Repository) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Per-scenario control keys.
func sharingKey(scenarioID int) string {
	return fmt.Sprintf("scenario.%d.sharing_percent", scenarioID)
}

func policyKey(scenarioID int) string {
	return fmt.Sprintf("scenario.%d.policy", scenarioID)
}

func taxKey(scenarioID int) string {
	return fmt.Sprintf("scenario.%d.tax_threshold", scenarioID)
}

// SaveControls persists the negotiation controls for one scenario.
func (r *Repository) SaveControls(scenarioID int, c domain.Controls) error {
	if err := r.SetFloat(sharingKey(scenarioID), c.SharingPercent); err != nil {
		return fmt.Errorf("failed to save sharing percent: %w", err)
	}
	if err := r.Set(policyKey(scenarioID), c.Policy.String()); err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	if err := r.SetFloat(taxKey(scenarioID), c.TaxThreshold); err != nil {
		return fmt.Errorf("failed to save tax threshold: %w", err)
	}
	return nil
}

// LoadControls returns the saved controls for one scenario, falling back to
// the provided defaults for anything not yet saved.
func (r *Repository) LoadControls(scenarioID int, defaults domain.Controls) (domain.Controls, error) {
	c := defaults

	sharing, err := r.GetFloat(sharingKey(scenarioID), defaults.SharingPercent)
	if err != nil {
		return defaults, err
	}
	c.SharingPercent = sharing

	policyStr, err := r.Get(policyKey(scenarioID))
	if err != nil {
		return defaults, err
	}
	if policyStr != nil {
		if policy, perr := domain.ParseDistributionPolicy(*policyStr); perr == nil {
			c.Policy = policy
		} else {
			r.log.Warn().Str("value", *policyStr).Msg("Ignoring unknown saved policy")
		}
	}

	tax, err := r.GetFloat(taxKey(scenarioID), defaults.TaxThreshold)
	if err != nil {
		return defaults, err
	}
	c.TaxThreshold = tax

	return c, nil
}

// ClearControls removes the saved controls for one scenario.
func (r *Repository) ClearControls(scenarioID int) error {
	for _, key := range []string{sharingKey(scenarioID), policyKey(scenarioID), taxKey(scenarioID)} {
		if err := r.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
