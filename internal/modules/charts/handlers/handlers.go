// Package handlers provides HTTP handlers for chart rendering.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/modules/charts"
	"github.com/ledgersmith/parity/internal/modules/negotiation"
)

// Handler provides HTTP handlers for chart endpoints
type Handler struct {
	service     *charts.Service
	negotiation *negotiation.Service
	log         zerolog.Logger
}

// NewHandler creates a new charts handler
func NewHandler(service *charts.Service, negotiationSvc *negotiation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service:     service,
		negotiation: negotiationSvc,
		log:         log.With().Str("handler", "charts").Logger(),
	}
}

// HandleRevenueChart handles GET /api/scenarios/{id}/chart
// Runs a round with the scenario's saved controls and renders the outcome
// as a standalone HTML page.
func (h *Handler) HandleRevenueChart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid scenario id", http.StatusBadRequest)
		return
	}

	scenario, err := catalog.ByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	outcome, err := h.negotiation.RunSaved(id)
	if err != nil {
		h.log.Error().Err(err).Int("scenario_id", id).Msg("Failed to run round for chart")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.service.RenderRevenueBar(w, scenario, outcome.Results); err != nil {
		h.log.Error().Err(err).Int("scenario_id", id).Msg("Failed to render chart")
	}
}
