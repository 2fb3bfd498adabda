// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/forkcast/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateCatalog,
		c.validateArtifact,
		c.validateRecommend,
		c.validateCache,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func validatePort(port int, name string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

func (c *Config) validateServer() error {
	if err := validatePort(c.Server.Port, "HTTP_PORT"); err != nil {
		return err
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("API_REQUEST_TIMEOUT must be positive, got %v", c.API.RequestTimeout)
	}
	return nil
}

// validateDatabase only applies when the catalog is read from Postgres.
func (c *Config) validateDatabase() error {
	if c.Catalog.Source != CatalogSourcePostgres {
		return nil
	}
	d := c.Database
	if strings.TrimSpace(d.Host) == "" {
		return fmt.Errorf("DB_HOST is required when CATALOG_SOURCE=postgres")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("DB_NAME is required when CATALOG_SOURCE=postgres")
	}
	if err := validatePort(d.Port, "DB_PORT"); err != nil {
		return err
	}
	if d.MaxRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be at least 1, got %d", d.MaxRetries)
	}
	if d.RetryDelay < 0 {
		return fmt.Errorf("DB_RETRY_DELAY must not be negative, got %v", d.RetryDelay)
	}
	if d.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", d.MaxOpenConns)
	}
	if d.MaxIdleConns < 0 || d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", d.MaxIdleConns)
	}
	if d.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %v", d.QueryTimeout)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case CatalogSourcePostgres:
	case CatalogSourceFile:
		if strings.TrimSpace(c.Catalog.File) == "" {
			return fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourcePostgres, CatalogSourceFile, c.Catalog.Source)
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative, got %v", c.Catalog.RefreshInterval)
	}
	return nil
}

func (c *Config) validateArtifact() error {
	a := c.Artifact
	switch a.Source {
	case ArtifactSourceDir:
		if strings.TrimSpace(a.Dir) == "" {
			return fmt.Errorf("ARTIFACT_DIR is required when ARTIFACT_SOURCE=dir")
		}
	case ArtifactSourceS3:
		missing := make([]string, 0, 4)
		if a.S3.Endpoint == "" {
			missing = append(missing, "ARTIFACT_S3_ENDPOINT")
		}
		if a.S3.Bucket == "" {
			missing = append(missing, "ARTIFACT_S3_BUCKET")
		}
		if a.S3.AccessKey == "" {
			missing = append(missing, "ARTIFACT_S3_ACCESS_KEY")
		}
		if a.S3.SecretKey == "" {
			missing = append(missing, "ARTIFACT_S3_SECRET_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("ARTIFACT_SOURCE=s3 requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("ARTIFACT_SOURCE must be %q or %q, got %q", ArtifactSourceDir, ArtifactSourceS3, a.Source)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopK < 1 {
		return fmt.Errorf("RECOMMEND_TOP_K must be at least 1, got %d", c.Recommend.TopK)
	}
	if c.Recommend.DefaultMinRating < 0 || c.Recommend.DefaultMinRating > 5 {
		return fmt.Errorf("RECOMMEND_DEFAULT_MIN_RATING must be between 0 and 5, got %v", c.Recommend.DefaultMinRating)
	}
	if c.Similar.DefaultN < 1 {
		return fmt.Errorf("SIMILAR_DEFAULT_N must be at least 1, got %d", c.Similar.DefaultN)
	}
	if c.Similar.MaxN < c.Similar.DefaultN {
		return fmt.Errorf("SIMILAR_MAX_N (%d) must be at least SIMILAR_DEFAULT_N (%d)", c.Similar.MaxN, c.Similar.DefaultN)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendNone:
		return nil
	case CacheBackendMemory:
		if c.Cache.Size < 1 {
			return fmt.Errorf("CACHE_SIZE must be at least 1, got %d", c.Cache.Size)
		}
	case CacheBackendRedis:
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return fmt.Errorf("CACHE_REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("CACHE_REDIS_DB must not be negative, got %d", c.Cache.Redis.DB)
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
