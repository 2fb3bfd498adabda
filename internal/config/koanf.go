// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/forkcast/config.yaml",
	"/etc/forkcast/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// Defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		API: APIConfig{
			RequestTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "db",
			Port:            5432,
			Name:            "restaurants",
			User:            "postgres",
			Password:        "password",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			MaxRetries:      5,
			RetryDelay:      3 * time.Second,
			QueryTimeout:    30 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:          CatalogSourcePostgres,
			File:            "",
			RefreshInterval: 0, // load once, as a single-process deployment expects
		},
		Artifact: ArtifactConfig{
			Source:   ArtifactSourceDir,
			Dir:      "/data/artifact",
			Required: true,
			S3: S3Config{
				Prefix: "",
				UseSSL: true,
			},
		},
		Recommend: RecommendConfig{
			TopK:             10,
			DefaultMinRating: 3.5,
		},
		Similar: SimilarConfig{
			DefaultN: 10,
			MaxN:     50,
		},
		Cache: CacheConfig{
			Backend: CacheBackendMemory,
			Size:    10000,
			TTL:     5 * time.Minute,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "forkcast:",
			},
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000", "http://frontend:80"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// DB_* names are the ones the compose deployment sets.
var envMappings = map[string]string{
	// Server mappings
	"http_host":          "server.host",
	"http_port":          "server.port",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",

	// API mappings
	"api_request_timeout": "api.request_timeout",

	// Database mappings
	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_name":              "database.name",
	"db_user":              "database.user",
	"db_pass":              "database.password",
	"db_sslmode":           "database.sslmode",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_max_retries":       "database.max_retries",
	"db_retry_delay":       "database.retry_delay",
	"db_query_timeout":     "database.query_timeout",

	// Catalog mappings
	"catalog_source":           "catalog.source",
	"catalog_file":             "catalog.file",
	"catalog_refresh_interval": "catalog.refresh_interval",

	// Artifact mappings
	"artifact_source":        "artifact.source",
	"artifact_dir":           "artifact.dir",
	"artifact_required":      "artifact.required",
	"artifact_s3_endpoint":   "artifact.s3.endpoint",
	"artifact_s3_bucket":     "artifact.s3.bucket",
	"artifact_s3_prefix":     "artifact.s3.prefix",
	"artifact_s3_access_key": "artifact.s3.access_key",
	"artifact_s3_secret_key": "artifact.s3.secret_key",
	"artifact_s3_use_ssl":    "artifact.s3.use_ssl",

	// Recommendation mappings
	"recommend_top_k":              "recommend.top_k",
	"recommend_default_min_rating": "recommend.default_min_rating",
	"similar_default_n":            "similar.default_n",
	"similar_max_n":                "similar.max_n",

	// Cache mappings
	"cache_backend":        "cache.backend",
	"cache_size":           "cache.size",
	"cache_ttl":            "cache.ttl",
	"cache_redis_addr":     "cache.redis.addr",
	"cache_redis_password": "cache.redis.password",
	"cache_redis_db":       "cache.redis.db",
	"cache_redis_prefix":   "cache.redis.prefix",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never leak into configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
