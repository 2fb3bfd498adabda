// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/forkcast/internal/catalog"
)

// CatalogRefresher replaces the current catalog snapshot from a provider.
// Satisfied by *catalog.Store.
type CatalogRefresher interface {
	Refresh(ctx context.Context, p catalog.Provider) (*catalog.Snapshot, error)
}

// CatalogRefreshConfig holds configuration for the refresh loop.
type CatalogRefreshConfig struct {
	// Interval between refreshes. Zero or less disables the service.
	Interval time.Duration

	// Timeout bounds one refresh. Default: 1m.
	Timeout time.Duration
}

// CatalogRefreshService periodically reloads the catalog. A failed refresh
// is logged and retried on the next tick; the previous snapshot keeps
// serving in the meantime.
type CatalogRefreshService struct {
	store    CatalogRefresher
	provider catalog.Provider
	config   CatalogRefreshConfig
	logger   zerolog.Logger
	name     string
}

// NewCatalogRefreshService creates a refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(store CatalogRefresher, provider catalog.Provider, cfg CatalogRefreshConfig, logger zerolog.Logger) *CatalogRefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &CatalogRefreshService{
		store:    store,
		provider: provider,
		config:   cfg,
		logger:   logger.With().Str("service", "catalog-refresh").Logger(),
		name:     "catalog-refresh",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("catalog refresh disabled")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("catalog refresh service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if _, err := s.store.Refresh(refreshCtx, s.provider); err != nil {
		s.logger.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
	}
}

// String returns the service name for logging.
func (s *CatalogRefreshService) String() string {
	return s.name
}
