// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/metrics"
)

// RedisConfig configures the shared Redis cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// Redis is a Store shared between replicas. Keys are namespaced by Prefix.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis connects to Redis and verifies the connection with a ping.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedis(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisFromClient(client, cfg.Prefix, cfg.TTL, logger), nil
}

// NewRedisFromClient wraps an existing client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisFromClient(client redis.UniversalClient, prefix string, ttl time.Duration, logger zerolog.Logger) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Str("backend", "redis").Logger(),
	}
}

// Get returns the cached value. Any Redis error other than a missing key is
// logged at debug and reported as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Debug().Err(err).Str("key", key).Msg("redis get failed")
		}
		metrics.RecordCacheMiss(r.Name())
		return nil, false
	}
	metrics.RecordCacheHit(r.Name())
	return val, true
}

// Set stores value with the configured TTL. Errors are logged at debug.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Debug().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Name returns "redis".
func (r *Redis) Name() string { return "redis" }

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
