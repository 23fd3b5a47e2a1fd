// Package handlers provides HTTP handlers for player progress.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/modules/progress"
)

// Handler provides HTTP handlers for progress endpoints
type Handler struct {
	service *progress.Service
	log     zerolog.Logger
}

// NewHandler creates a new progress handler
func NewHandler(service *progress.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "progress").Logger(),
	}
}

// HandleGetProgress handles GET /api/progress
func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build progress summary")
		http.Error(w, "Failed to get progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary)
}

// HandleReset handles POST /api/progress/reset
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.service.Reset()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to reset progress")
		http.Error(w, "Failed to reset progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"status":         "ok",
		"levels_cleared": cleared,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
