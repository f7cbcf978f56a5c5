// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the quickly-calc command.

quickly-calc is a simple four-function calculator with percent, sign toggle
and a bounded history of the last thirty results. The same engine backs an
HTTP API with a cached web shell, a terminal UI and a one-shot eval command.

# Commands

	quickly-calc serve              HTTP API and web shell
	quickly-calc tui                interactive terminal calculator
	quickly-calc eval 12×3−50%      evaluate once and record the result
	quickly-calc history list       show history, newest first
	quickly-calc history clear      clear history
	quickly-calc history namespaces list stored histories

tui, eval and the history commands use the local history unless --session
selects the history of a web session.

# Configuration

Settings are resolved from defaults, then an optional YAML file, then the
environment (a .env file is loaded first), then flags:

  - CALC_CONFIG (-c): YAML config file
  - PORT (-p): Server port (default: 8318)
  - DATABASE_URL (-d): Database URL (default: file:quickly-calc.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_SALT (--session-salt): Secret for session tokens, required by serve
  - ASSET_UPSTREAM (--asset-upstream): Origin for web assets (default: embedded)
  - CACHE_VERSION (--cache-version): Asset cache version tag (default: v1)
  - LOG_LEVEL (--log-level): debug, info, warn or error

# Architecture

  - calc: tokenizer, evaluator, input buffer and controller
  - history: bounded history over a key-value store
  - db: SQL-backed key-value store (SQLite or PostgreSQL)
  - assets: embedded web shell and the caching asset worker
  - handlers: HTTP handlers for evaluation and calculator sessions
  - router: Route definitions using Go 1.22+ routing
  - middleware: request IDs, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Session IDs and tokens
  - tui: Bubble Tea terminal UI
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
