// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points config discovery at an empty directory so a stray
// config.yaml cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Host != "db" || cfg.Database.Name != "restaurants" {
		t.Errorf("Database = %s/%s, want db/restaurants", cfg.Database.Host, cfg.Database.Name)
	}
	if cfg.Database.MaxRetries != 5 || cfg.Database.RetryDelay != 3*time.Second {
		t.Errorf("retry = %d x %v, want 5 x 3s", cfg.Database.MaxRetries, cfg.Database.RetryDelay)
	}
	if cfg.Recommend.TopK != 10 || cfg.Recommend.DefaultMinRating != 3.5 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Similar.DefaultN != 10 || cfg.Similar.MaxN != 50 {
		t.Errorf("Similar = %+v", cfg.Similar)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASS", "s3cret")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "90s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Host != "postgres.internal" || cfg.Database.Port != 6543 {
		t.Errorf("Database = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Name != "catalog" || cfg.Database.User != "svc" || cfg.Database.Password != "s3cret" {
		t.Errorf("Database credentials = %+v", cfg.Database)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if got := cfg.Security.CORSOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", got)
	}
	if cfg.Catalog.RefreshInterval != 90*time.Second {
		t.Errorf("RefreshInterval = %v", cfg.Catalog.RefreshInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7000
recommend:
  top_k: 5
cache:
  backend: none
security:
  cors_origins:
    - https://yaml.example
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("env did not override file: port = %d", cfg.Server.Port)
	}
	if cfg.Recommend.TopK != 5 {
		t.Errorf("TopK = %d, want 5 from file", cfg.Recommend.TopK)
	}
	if cfg.Cache.Backend != CacheBackendNone {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if got := cfg.Security.CORSOrigins; len(got) != 1 || got[0] != "https://yaml.example" {
		t.Errorf("CORSOrigins = %v", got)
	}
	if cfg.Database.Host != "db" {
		t.Errorf("unset value lost its default: %q", cfg.Database.Host)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	isolate(t)
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "CACHE_BACKEND") {
		t.Fatalf("LoadWithKoanf() error = %v, want CACHE_BACKEND failure", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"DB_PASS", "database.password"},
		{"db_host", "database.host"},
		{"ARTIFACT_S3_BUCKET", "artifact.s3.bucket"},
		{"CACHE_REDIS_ADDR", "cache.redis.addr"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "HTTP_PORT"},
		{name: "bad db port", mutate: func(c *Config) { c.Database.Port = 0 }, wantErr: "DB_PORT"},
		{name: "zero retries", mutate: func(c *Config) { c.Database.MaxRetries = 0 }, wantErr: "DB_MAX_RETRIES"},
		{name: "db skipped for file catalog", mutate: func(c *Config) {
			c.Catalog.Source = CatalogSourceFile
			c.Catalog.File = "seed.json"
			c.Database.Host = ""
		}},
		{name: "file catalog needs path", mutate: func(c *Config) { c.Catalog.Source = CatalogSourceFile }, wantErr: "CATALOG_FILE"},
		{name: "unknown catalog", mutate: func(c *Config) { c.Catalog.Source = "mysql" }, wantErr: "CATALOG_SOURCE"},
		{name: "incomplete s3", mutate: func(c *Config) {
			c.Artifact.Source = ArtifactSourceS3
			c.Artifact.S3.Endpoint = "minio:9000"
		}, wantErr: "ARTIFACT_S3_BUCKET"},
		{name: "complete s3", mutate: func(c *Config) {
			c.Artifact.Source = ArtifactSourceS3
			c.Artifact.S3 = S3Config{Endpoint: "minio:9000", Bucket: "b", AccessKey: "a", SecretKey: "s"}
		}},
		{name: "top k", mutate: func(c *Config) { c.Recommend.TopK = 0 }, wantErr: "RECOMMEND_TOP_K"},
		{name: "rating range", mutate: func(c *Config) { c.Recommend.DefaultMinRating = 6 }, wantErr: "RECOMMEND_DEFAULT_MIN_RATING"},
		{name: "max n below default", mutate: func(c *Config) { c.Similar.MaxN = 3 }, wantErr: "SIMILAR_MAX_N"},
		{name: "memory size", mutate: func(c *Config) { c.Cache.Size = 0 }, wantErr: "CACHE_SIZE"},
		{name: "redis addr", mutate: func(c *Config) {
			c.Cache.Backend = CacheBackendRedis
			c.Cache.Redis.Addr = ""
		}, wantErr: "CACHE_REDIS_ADDR"},
		{name: "rate limit disabled skips checks", mutate: func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}},
		{name: "rate limit", mutate: func(c *Config) { c.Security.RateLimitReqs = 0 }, wantErr: "RATE_LIMIT_REQUESTS"},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "LOG_LEVEL"},
		{name: "log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{Host: "db", Port: 5432, Name: "restaurants", User: "postgres", Password: "p@ss word", SSLMode: "disable"}
	want := "postgres://postgres:p%40ss%20word@db:5432/restaurants?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	if got := (ServerConfig{Host: "0.0.0.0", Port: 5000}).Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q", got)
	}
}
