// Package handlers provides HTTP handlers for attempt history.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/modules/history"
)

// Handler provides HTTP handlers for history endpoints
type Handler struct {
	repo *history.Repository
	log  zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(repo *history.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "history").Logger(),
	}
}

// HandleRecent handles GET /api/history/recent
// Optional query params: scenario_id (filter), limit (default 20).
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	scenarioID, _ := strconv.Atoi(r.URL.Query().Get("scenario_id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	attempts, err := h.repo.Recent(scenarioID, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load recent attempts")
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	if attempts == nil {
		attempts = []history.Attempt{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(attempts)
}
