package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ledgersmith/parity/internal/database"
)

// SystemHandlers handles system monitoring endpoints.
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	leagueDB    *database.DB
	cacheDB     *database.DB
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, leagueDB, cacheDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		leagueDB:    leagueDB,
		cacheDB:     cacheDB,
	}
}

// HealthResponse is the /api/system/health payload.
type HealthResponse struct {
	Status    string            `json:"status"` // "healthy" or "unhealthy"
	Databases map[string]string `json:"databases"`
	Uptime    string            `json:"uptime"`
}

// StatsResponse is the /api/system/stats payload.
type StatsResponse struct {
	UptimeHours float64            `json:"uptime_hours"`
	CPUPercent  float64            `json:"cpu_percent"`
	RAMPercent  float64            `json:"ram_percent"`
	Databases   map[string]float64 `json:"database_size_mb"`
}

// HandleHealth returns database health status
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Databases: make(map[string]string),
		Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
	}

	for _, db := range []*database.DB{h.leagueDB, h.cacheDB} {
		if db == nil {
			continue
		}
		if err := db.QuickCheck(ctx); err != nil {
			h.log.Error().Err(err).Str("db", db.Name()).Msg("Database health check failed")
			response.Databases[db.Name()] = "unhealthy: " + err.Error()
			response.Status = "unhealthy"
		} else {
			response.Databases[db.Name()] = "ok"
		}
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// HandleStats returns process and database statistics
func (h *SystemHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	response := StatsResponse{
		UptimeHours: time.Since(h.startupTime).Hours(),
		CPUPercent:  cpuPercent,
		RAMPercent:  ramPercent,
		Databases:   make(map[string]float64),
	}

	for _, db := range []*database.DB{h.leagueDB, h.cacheDB} {
		if db == nil {
			continue
		}
		if info, err := os.Stat(db.Path()); err == nil {
			response.Databases[db.Name()] = float64(info.Size()) / 1024 / 1024
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval so the endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
