// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/forkcast/internal/config"
)

// DB is a pooled connection to the restaurant catalog database.
type DB struct {
	conn   *sql.DB
	cfg    config.DatabaseConfig
	logger zerolog.Logger
}

// Open connects to Postgres, retrying up to cfg.MaxRetries times with
// cfg.RetryDelay between attempts. The database container usually starts
// alongside the service, so the first attempts are expected to fail.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "database").Logger()

	var conn *sql.DB
	err := retry(ctx, cfg.MaxRetries, cfg.RetryDelay, &logger, func(ctx context.Context) error {
		c, err := connect(ctx, &cfg)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("connected to catalog database")

	return &DB{conn: conn, cfg: cfg, logger: logger}, nil
}

func connect(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return conn, nil
}

// retry runs fn up to attempts times. Attempts are paced by a token bucket
// holding a single token, so the first runs immediately and each later one
// waits delay. The last error is returned when every attempt fails.
func retry(ctx context.Context, attempts int, delay time.Duration, logger *zerolog.Logger, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	if delay <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			if lastErr != nil {
				return fmt.Errorf("%w (after %d attempts: %w)", err, attempt-1, lastErr)
			}
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt < attempts {
			logger.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Dur("retry_in", delay).
				Msg("database not ready, retrying")
		}
	}
	return fmt.Errorf("connect after %d attempts: %w", attempts, lastErr)
}

// Ping checks connectivity.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.conn == nil {
		return ErrNotConnected
	}
	return db.conn.PingContext(ctx)
}

// Close releases the pool.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}
