// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/api"
	"github.com/prem22k/Hack-Hunt/internal/cache"
	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/events"
	"github.com/prem22k/Hack-Hunt/internal/ingest"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/recommend"
	"github.com/prem22k/Hack-Hunt/internal/sources"
	"github.com/prem22k/Hack-Hunt/internal/store"
	"github.com/prem22k/Hack-Hunt/internal/supervisor"
	"github.com/prem22k/Hack-Hunt/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential wiring
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("store", cfg.Store.Backend).
		Str("cache", cfg.Cache.Backend).
		Bool("scheduler", cfg.Ingest.SchedulerEnabled).
		Msg("Starting Hack-Hunt")

	docStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := docStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	upserter := store.NewUpserter(docStore, models.IdentityStrategy(cfg.Store.Identity), cfg.Store.BatchSize)

	bus, err := events.NewBus(cfg.Events)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	registry := sources.NewRegistryFromConfig(cfg.Sources, sources.NewChromeBrowser(cfg.Sources.Browser))
	orchestrator := ingest.NewOrchestrator(registry, upserter, cfg.Ingest.SourceTimeout)
	defer orchestrator.Close()
	orchestrator.SetOnRunCompleted(func(ctx context.Context, r *ingest.Report) {
		if err := bus.PublishIngestCompleted(ctx, r.Event()); err != nil {
			logging.Warn().Err(err).Str("run_id", r.RunID).Msg("Failed to publish ingest event")
		}
	})
	logging.Info().Int("sources", registry.Len()).Msg("Source registry ready")

	recCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := recCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing recommendation cache")
		}
	}()
	recommender := recommend.NewServiceFromConfig(cfg.Recommend, docStore, recCache)

	handler := api.NewHandler(docStore, recommender, orchestrator, cfg.API)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.API)))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		return err
	}

	if cfg.Ingest.SchedulerEnabled {
		scheduler, err := ingest.NewScheduler(orchestrator, cfg.Ingest.Schedule, cfg.Ingest.RunOnStartup)
		if err != nil {
			return err
		}
		tree.AddDataService(services.NewSchedulerService(scheduler))
	}
	if gc, ok := docStore.(services.GarbageCollector); ok {
		tree.AddDataService(services.NewStoreMaintenanceService(gc, services.DefaultMaintenanceInterval))
	}
	tree.AddMessagingService(services.NewEventListenerService("recommend-cache-invalidator", bus, recommender.HandleIngestCompleted))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)
	tree.LogUnstopped()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
