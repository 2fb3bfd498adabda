// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/forkcast/internal/api"
	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/clicks"
	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/supervisor"
	"github.com/tomtom215/forkcast/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Str("artifact_source", cfg.Artifact.Source).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting Forkcast")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := newCatalogProvider(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog provider")
	}
	defer closeProvider()

	store := catalog.NewStore(logging.WithComponent("catalog"))
	bundle, err := loadData(ctx, cfg, store, provider)
	if err != nil {
		closeProvider()
		logging.Fatal().Err(err).Msg("Failed to load startup data")
	}

	engine, err := recommend.NewEngine(engineConfig(cfg), store, logging.WithComponent("recommend"))
	if err != nil {
		closeProvider()
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	if bundle != nil {
		watchDrift(store, bundle)
		engine.SetNeighbors(recommend.NewNeighborLookup(bundle))
	}

	responseCache, closeCache := newResponseCache(ctx, cfg)
	defer closeCache()
	engine.SetCache(responseCache)

	handler := api.NewHandler(engine, store, clicks.NewTracker(), api.Options{
		RequestTimeout:   cfg.API.RequestTimeout,
		ArtifactRequired: cfg.Artifact.Required,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	if cfg.Catalog.RefreshInterval > 0 {
		tree.AddDataService(services.NewCatalogRefreshService(store, provider, services.CatalogRefreshConfig{
			Interval: cfg.Catalog.RefreshInterval,
		}, logging.Logger()))
	} else {
		logging.Info().Msg("Catalog refresh disabled, serving the startup snapshot")
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Forkcast stopped")
}

func engineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		TopK:             cfg.Recommend.TopK,
		DefaultMinRating: cfg.Recommend.DefaultMinRating,
		DefaultSimilarN:  cfg.Similar.DefaultN,
		MaxSimilarN:      cfg.Similar.MaxN,
	}
}
