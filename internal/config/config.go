// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Artifact  ArtifactConfig  `koanf:"artifact"`
	Recommend RecommendConfig `koanf:"recommend"`
	Similar   SimilarConfig   `koanf:"similar"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds per-request settings
type APIConfig struct {
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// DatabaseConfig holds the Postgres catalog connection
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`

	// MaxRetries is the number of connection attempts before startup fails.
	MaxRetries   int           `koanf:"max_retries"`
	RetryDelay   time.Duration `koanf:"retry_delay"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// DSN returns a lib/pq connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Catalog sources
const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceFile     = "file"
)

// CatalogConfig selects where the restaurant catalog is read from
type CatalogConfig struct {
	Source string `koanf:"source"`
	File   string `koanf:"file"`

	// RefreshInterval of 0 loads the catalog once at startup.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// Artifact sources
const (
	ArtifactSourceDir = "dir"
	ArtifactSourceS3  = "s3"
)

// ArtifactConfig locates the neighbor artifact bundle
type ArtifactConfig struct {
	Source string `koanf:"source"`
	Dir    string `koanf:"dir"`

	// Required makes an artifact load failure fatal at startup.
	Required bool     `koanf:"required"`
	S3       S3Config `koanf:"s3"`
}

// S3Config holds object store settings for the artifact bundle
type S3Config struct {
	Endpoint  string `koanf:"endpoint"`
	Bucket    string `koanf:"bucket"`
	Prefix    string `koanf:"prefix"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
}

// RecommendConfig holds content ranking settings
type RecommendConfig struct {
	TopK             int     `koanf:"top_k"`
	DefaultMinRating float64 `koanf:"default_min_rating"`
}

// SimilarConfig holds neighbor lookup settings
type SimilarConfig struct {
	DefaultN int `koanf:"default_n"`
	MaxN     int `koanf:"max_n"`
}

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// CacheConfig selects the response cache backend
type CacheConfig struct {
	Backend string        `koanf:"backend"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
	Redis   RedisConfig   `koanf:"redis"`
}

// RedisConfig holds the shared cache connection
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads .env into the process environment when present, then loads the
// layered configuration.
func Load() (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()
	return LoadWithKoanf()
}
