// Package server provides the HTTP server and routing for the league
// negotiation service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/config"
	"github.com/ledgersmith/parity/internal/database"
	"github.com/ledgersmith/parity/internal/events"
	chartshandlers "github.com/ledgersmith/parity/internal/modules/charts/handlers"
	historyhandlers "github.com/ledgersmith/parity/internal/modules/history/handlers"
	negotiationhandlers "github.com/ledgersmith/parity/internal/modules/negotiation/handlers"
	progresshandlers "github.com/ledgersmith/parity/internal/modules/progress/handlers"
	settingshandlers "github.com/ledgersmith/parity/internal/modules/settings/handlers"
)

// Config holds server configuration
type Config struct {
	Log      zerolog.Logger
	LeagueDB *database.DB
	CacheDB  *database.DB
	Config   *config.Config
	Port     int
	DevMode  bool

	Bus                 *events.Bus
	NegotiationHandlers *negotiationhandlers.Handler
	SettingsHandlers    *settingshandlers.Handler
	ProgressHandlers    *progresshandlers.Handler
	HistoryHandlers     *historyhandlers.Handler
	ChartsHandlers      *chartshandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	leagueDB       *database.DB
	cacheDB        *database.DB
	cfg            *config.Config
	port           int
	systemHandlers *SystemHandlers
	eventsStream   *EventsStreamHandler

	negotiationHandlers *negotiationhandlers.Handler
	settingsHandlers    *settingshandlers.Handler
	progressHandlers    *progresshandlers.Handler
	historyHandlers     *historyhandlers.Handler
	chartsHandlers      *chartshandlers.Handler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:              chi.NewRouter(),
		log:                 cfg.Log.With().Str("component", "server").Logger(),
		leagueDB:            cfg.LeagueDB,
		cacheDB:             cfg.CacheDB,
		cfg:                 cfg.Config,
		port:                cfg.Port,
		negotiationHandlers: cfg.NegotiationHandlers,
		settingsHandlers:    cfg.SettingsHandlers,
		progressHandlers:    cfg.ProgressHandlers,
		historyHandlers:     cfg.HistoryHandlers,
		chartsHandlers:      cfg.ChartsHandlers,
	}

	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.LeagueDB, cfg.CacheDB)
	s.eventsStream = NewEventsStreamHandler(cfg.Bus, cfg.Log)

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.negotiationHandlers.HandleListScenarios)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.negotiationHandlers.HandleGetScenario)
				r.Post("/allocate", s.negotiationHandlers.HandleAllocate)
				r.Post("/event", s.negotiationHandlers.HandleDrawEvent)
				r.Get("/controls", s.settingsHandlers.HandleGetControls)
				r.Put("/controls", s.settingsHandlers.HandleSaveControls)
				r.Get("/chart", s.chartsHandlers.HandleRevenueChart)
			})
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", s.progressHandlers.HandleGetProgress)
			r.Post("/reset", s.progressHandlers.HandleReset)
		})

		r.Get("/history/recent", s.historyHandlers.HandleRecent)

		r.Route("/system", func(r chi.Router) {
			r.Get("/health", s.systemHandlers.HandleHealth)
			r.Get("/stats", s.systemHandlers.HandleStats)
		})

		r.Get("/events/stream", s.eventsStream.ServeHTTP)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
