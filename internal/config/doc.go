// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package config provides layered configuration for Forkcast.

Configuration is built with Koanf v2 from three layers, lowest priority first:

 1. Built-in defaults (defaultConfig, loaded through the structs provider)
 2. An optional YAML file: CONFIG_PATH, then config.yaml in the working
    directory, then /etc/forkcast/config.yaml
 3. Environment variables mapped through an explicit table

Load also reads a .env file into the process environment before layering,
so local development can keep DB_* credentials out of the shell.

# Environment Variables

Only mapped names are read. The most common ones:

	HTTP_PORT                 server.port (5000)
	DB_HOST, DB_PORT          database.host, database.port (db, 5432)
	DB_NAME, DB_USER, DB_PASS database.name, database.user, database.password
	CATALOG_SOURCE            postgres or file
	CATALOG_REFRESH_INTERVAL  0 loads the catalog once
	ARTIFACT_SOURCE           dir or s3
	ARTIFACT_REQUIRED         startup fails without a bundle when true
	CACHE_BACKEND             memory, redis or none
	CORS_ORIGINS              comma-separated
	LOG_LEVEL, LOG_FORMAT     logging

# Validation

Validate runs after unmarshalling and reports the first problem using the
environment variable name, so operators can fix it without reading code.
*/
package config
