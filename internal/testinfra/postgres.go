// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

//go:build integration

package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/forkcast/internal/config"
)

const (
	// DefaultPostgresImage matches the production catalog database.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultPostgresPort is the container-side listener.
	DefaultPostgresPort = "5432/tcp"
)

// PostgresContainer is a running Postgres instance.
type PostgresContainer struct {
	testcontainers.Container

	// Config points at the container and can be passed to database.Open.
	Config config.DatabaseConfig
}

// PostgresOption configures the Postgres container.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	initSQL      string
	startTimeout time.Duration
}

// WithPostgresImage sets a custom Postgres image.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithInitSQL runs statements once the server accepts connections.
func WithInitSQL(statements string) PostgresOption {
	return func(c *postgresConfig) {
		c.initSQL = statements
	}
}

// WithPostgresStartTimeout sets the startup wait.
func WithPostgresStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// NewPostgresContainer starts Postgres with the production database name
// and credentials.
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultPostgresPort},
		Env: map[string]string{
			"POSTGRES_DB":       "restaurants",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "password",
		},
		// the entrypoint restarts the server once after init
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(DefaultPostgresPort),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, host, port, err := startContainer(ctx, req, DefaultPostgresPort)
	if err != nil {
		return nil, err
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            port,
		Name:            "restaurants",
		User:            "postgres",
		Password:        "password",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		MaxRetries:      5,
		RetryDelay:      500 * time.Millisecond,
		QueryTimeout:    10 * time.Second,
	}
	pg := &PostgresContainer{Container: container, Config: dbCfg}

	if cfg.initSQL != "" {
		if err := pg.Exec(ctx, cfg.initSQL); err != nil {
			container.Terminate(ctx) //nolint:errcheck
			return nil, fmt.Errorf("run init sql: %w", err)
		}
	}
	return pg, nil
}

// Exec runs statements on a short-lived connection.
func (p *PostgresContainer) Exec(ctx context.Context, statements string) error {
	conn, err := sql.Open("postgres", p.Config.DSN())
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	_, err = conn.ExecContext(ctx, statements)
	return err
}
