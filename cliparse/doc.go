// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands built with cobra bind the same flags to their own flag set and
resolve after parsing:

	flags := cliparse.BindFlags(rootCmd.PersistentFlags())
	cfg, err := flags.Resolve()

# Config Fields

  - Port: Server listen port (default: 8318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default: file:quickly-calc.db)
  - SessionSalt: Secret for session token HMAC (required to serve)
  - AssetUpstream: origin to fetch web assets from (default: embedded)
  - CacheVersion: asset cache version tag (default: v1)
  - LogLevel: debug, info, warn or error (default: info)

# Sources

Values are layered, later sources winning:

 1. built-in defaults
 2. YAML config file (-c/--config or CALC_CONFIG)
 3. environment variables
 4. CLI flags

# CLI Flags

	-c, --config         YAML config file
	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  Database type
	--session-salt       Session token salt
	--asset-upstream     Upstream asset origin
	--cache-version      Asset cache version tag
	--log-level          Log level

# Environment Variables

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SESSION_SALT    → --session-salt
	ASSET_UPSTREAM  → --asset-upstream
	CACHE_VERSION   → --cache-version
	LOG_LEVEL       → --log-level

LoadDotEnv reads a .env file into the environment first, without
overriding variables that are already set.

# Config File

	port: 8318
	database_type: postgres
	database_url: postgres://calc@localhost/calc?sslmode=disable
	session_salt: change-me
	cache_version: v2
*/
package cliparse
