// Package main is the entry point for the league revenue-sharing negotiation
// service. It wires the scenario catalog, allocation engine and evaluator
// behind an HTTP API, with persistent player progress and attempt history.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ledgersmith/parity/internal/config"
	"github.com/ledgersmith/parity/internal/database"
	"github.com/ledgersmith/parity/internal/events"
	chartsmod "github.com/ledgersmith/parity/internal/modules/charts"
	chartshandlers "github.com/ledgersmith/parity/internal/modules/charts/handlers"
	"github.com/ledgersmith/parity/internal/modules/history"
	historyhandlers "github.com/ledgersmith/parity/internal/modules/history/handlers"
	"github.com/ledgersmith/parity/internal/modules/negotiation"
	negotiationhandlers "github.com/ledgersmith/parity/internal/modules/negotiation/handlers"
	"github.com/ledgersmith/parity/internal/modules/progress"
	progresshandlers "github.com/ledgersmith/parity/internal/modules/progress/handlers"
	"github.com/ledgersmith/parity/internal/modules/settings"
	settingshandlers "github.com/ledgersmith/parity/internal/modules/settings/handlers"
	"github.com/ledgersmith/parity/internal/server"
	"github.com/ledgersmith/parity/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting parity service")

	// league.db holds settings and progress; cache.db holds attempt history.
	leagueDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "league.db"),
		Profile: database.ProfileStandard,
		Name:    "league",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open league database")
	}
	defer leagueDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{leagueDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("db", db.Name()).Msg("Failed to migrate database")
		}
	}

	bus := events.NewBus()

	eventSeed := cfg.EventSeed
	if eventSeed == 0 {
		eventSeed = time.Now().UnixNano()
	}
	eventGen := events.NewGenerator(eventSeed)

	settingsRepo := settings.NewRepository(leagueDB.Conn(), log.Logger)
	progressRepo := progress.NewRepository(leagueDB.Conn(), log.Logger)
	historyRepo := history.NewRepository(cacheDB.Conn(), log.Logger)

	progressSvc := progress.NewService(progressRepo, bus, log.Logger)
	negotiationSvc := negotiation.NewService(settingsRepo, historyRepo, progressSvc, eventGen, bus, log.Logger)
	chartsSvc := chartsmod.NewService(log.Logger)

	srv := server.New(server.Config{
		Log:                 log.Logger,
		LeagueDB:            leagueDB,
		CacheDB:             cacheDB,
		Config:              cfg,
		Port:                cfg.Port,
		DevMode:             cfg.DevMode,
		Bus:                 bus,
		NegotiationHandlers: negotiationhandlers.NewHandler(negotiationSvc, log.Logger),
		SettingsHandlers:    settingshandlers.NewHandler(settingsRepo, bus, log.Logger),
		ProgressHandlers:    progresshandlers.NewHandler(progressSvc, log.Logger),
		HistoryHandlers:     historyhandlers.NewHandler(historyRepo, log.Logger),
		ChartsHandlers:      chartshandlers.NewHandler(chartsSvc, negotiationSvc, log.Logger),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
