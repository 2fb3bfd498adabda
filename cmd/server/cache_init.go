// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"

	"github.com/tomtom215/forkcast/internal/cache"
	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/logging"
)

// newResponseCache builds the configured cache. An unreachable Redis falls
// back to the in-process cache so the service still starts.
func newResponseCache(ctx context.Context, cfg *config.Config) (cache.Store, func()) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		logging.Info().Msg("Response cache disabled")
		return cache.Nop{}, func() {}

	case config.CacheBackendRedis:
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
			TTL:      cfg.Cache.TTL,
		}, logging.WithComponent("cache"))
		if err == nil {
			logging.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("Using Redis response cache")
			return r, func() {
				if err := r.Close(); err != nil {
					logging.Warn().Err(err).Msg("Error closing Redis client")
				}
			}
		}
		logging.Warn().Err(err).Msg("Redis unavailable, falling back to in-process cache")
	}

	logging.Info().
		Int("size", cfg.Cache.Size).
		Dur("ttl", cfg.Cache.TTL).
		Msg("Using in-process response cache")
	return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL), func() {}
}
