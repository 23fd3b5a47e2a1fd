// Package handlers provides HTTP handlers for scenario control settings.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/events"
	"github.com/ledgersmith/parity/internal/modules/settings"
)

// Handler provides HTTP handlers for settings endpoints
type Handler struct {
	repo *settings.Repository
	bus  *events.Bus
	log  zerolog.Logger
}

// NewHandler creates a new settings handler
func NewHandler(repo *settings.Repository, bus *events.Bus, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		bus:  bus,
		log:  log.With().Str("handler", "settings").Logger(),
	}
}

// HandleGetControls handles GET /api/scenarios/{id}/controls
func (h *Handler) HandleGetControls(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.scenarioFromURL(w, r)
	if !ok {
		return
	}

	defaults := domain.Controls{SharingPercent: 0, Policy: scenario.DefaultPolicy, TaxThreshold: 0}
	controls, err := h.repo.LoadControls(scenario.ID, defaults)
	if err != nil {
		h.log.Error().Err(err).Int("scenario_id", scenario.ID).Msg("Failed to load controls")
		http.Error(w, "Failed to load controls", http.StatusInternalServerError)
		return
	}

	writeJSON(w, settings.ControlsResponse{
		ScenarioID:     scenario.ID,
		SharingPercent: controls.SharingPercent,
		Policy:         controls.Policy.String(),
		TaxThreshold:   controls.TaxThreshold,
	})
}

// HandleSaveControls handles PUT /api/scenarios/{id}/controls
func (h *Handler) HandleSaveControls(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.scenarioFromURL(w, r)
	if !ok {
		return
	}

	var update settings.ControlsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	policy := scenario.DefaultPolicy
	if update.Policy != "" {
		parsed, err := domain.ParseDistributionPolicy(update.Policy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		policy = parsed
	}

	controls := domain.Controls{
		SharingPercent: update.SharingPercent,
		Policy:         policy,
		TaxThreshold:   update.TaxThreshold,
	}

	if err := h.repo.SaveControls(scenario.ID, controls); err != nil {
		h.log.Error().Err(err).Int("scenario_id", scenario.ID).Msg("Failed to save controls")
		http.Error(w, "Failed to save controls", http.StatusInternalServerError)
		return
	}

	if h.bus != nil {
		h.bus.Publish("settings", &events.SettingsChangedData{ScenarioID: scenario.ID})
	}

	writeJSON(w, settings.ControlsResponse{
		ScenarioID:     scenario.ID,
		SharingPercent: controls.SharingPercent,
		Policy:         controls.Policy.String(),
		TaxThreshold:   controls.TaxThreshold,
	})
}

func (h *Handler) scenarioFromURL(w http.ResponseWriter, r *http.Request) (domain.ScenarioConfig, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid scenario id", http.StatusBadRequest)
		return domain.ScenarioConfig{}, false
	}

	scenario, err := catalog.ByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return domain.ScenarioConfig{}, false
	}

	return scenario, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
