// Package handlers provides HTTP handlers for scenarios and negotiation.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/catalog"
	"github.com/ledgersmith/parity/internal/domain"
	"github.com/ledgersmith/parity/internal/modules/negotiation"
)

// Handler provides HTTP handlers for negotiation endpoints
type Handler struct {
	service *negotiation.Service
	log     zerolog.Logger
}

// NewHandler creates a new negotiation handler
func NewHandler(service *negotiation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "negotiation").Logger(),
	}
}

// allocateRequest is the body of POST /api/scenarios/{id}/allocate.
// The revenue event is optional; when present it is applied to the named
// team's base revenue for this round only.
type allocateRequest struct {
	SharingPercent float64              `json:"sharing_percent"`
	Policy         string               `json:"policy"`
	TaxThreshold   float64              `json:"tax_threshold"`
	RevenueEvent   *domain.RevenueEvent `json:"revenue_event,omitempty"`
}

// teamView exposes the tier name, which the domain type keeps internal.
type teamView struct {
	Name             string  `json:"name"`
	City             string  `json:"city"`
	Tier             string  `json:"tier"`
	BaseRevenue      float64 `json:"base_revenue"`
	MarketSize       float64 `json:"market_size"`
	MinViableRevenue float64 `json:"min_viable_revenue"`
	Icon             string  `json:"icon,omitempty"`
}

type scenarioView struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Teams             []teamView        `json:"teams"`
	Thresholds        domain.Thresholds `json:"thresholds"`
	DefaultPolicy     string            `json:"default_policy"`
	AllowPolicyChoice bool              `json:"allow_policy_choice"`
	TaxEnabled        bool              `json:"tax_enabled"`
}

func newScenarioView(s domain.ScenarioConfig) scenarioView {
	teams := make([]teamView, 0, len(s.Teams))
	for _, t := range s.Teams {
		teams = append(teams, teamView{
			Name:             t.Name,
			City:             t.City,
			Tier:             t.Tier.String(),
			BaseRevenue:      t.BaseRevenue,
			MarketSize:       t.MarketSize,
			MinViableRevenue: t.MinViableRevenue,
			Icon:             t.Icon,
		})
	}
	return scenarioView{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Teams:             teams,
		Thresholds:        s.Thresholds,
		DefaultPolicy:     s.DefaultPolicy.String(),
		AllowPolicyChoice: s.AllowPolicyChoice,
		TaxEnabled:        s.TaxEnabled,
	}
}

// HandleListScenarios handles GET /api/scenarios
func (h *Handler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := catalog.All()
	views := make([]scenarioView, 0, len(scenarios))
	for _, s := range scenarios {
		views = append(views, newScenarioView(s))
	}
	writeJSON(w, views)
}

// HandleGetScenario handles GET /api/scenarios/{id}
func (h *Handler) HandleGetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.scenarioFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, newScenarioView(scenario))
}

// HandleAllocate handles POST /api/scenarios/{id}/allocate
func (h *Handler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.scenarioFromURL(w, r)
	if !ok {
		return
	}

	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	policy := scenario.DefaultPolicy
	if req.Policy != "" {
		parsed, err := domain.ParseDistributionPolicy(req.Policy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		policy = parsed
	}

	controls := domain.Controls{
		SharingPercent: req.SharingPercent,
		Policy:         policy,
		TaxThreshold:   req.TaxThreshold,
	}

	outcome, err := h.service.Run(scenario.ID, controls, req.RevenueEvent)
	if err != nil {
		h.log.Error().Err(err).Int("scenario_id", scenario.ID).Msg("Negotiation round failed")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, outcome)
}

// HandleDrawEvent handles POST /api/scenarios/{id}/event
func (h *Handler) HandleDrawEvent(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.scenarioFromURL(w, r)
	if !ok {
		return
	}

	event, err := h.service.DrawEvent(scenario.ID)
	if err != nil {
		h.log.Error().Err(err).Int("scenario_id", scenario.ID).Msg("Failed to draw revenue event")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, event)
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
