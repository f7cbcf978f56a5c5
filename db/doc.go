// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and the
SQL-backed key-value store used for calculator history.

# Connecting

Open connects with the driver for the dialect, pings, and creates the
schema:

	conn, err := db.Open(db.DialectSQLite, "file:quickly-calc.db")
	conn, err := db.Open(db.DialectPostgres, "postgres://...")

SQLite uses modernc.org/sqlite (driver "sqlite", no cgo); PostgreSQL
uses github.com/lib/pq (driver "postgres"). SQLite connections are
limited to one open connection.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for
all tables and indexes.

# Tables

  - kv_entry: (namespace, entry_key) → value, with updated_at

# Key-Value Store

KVStore partitions kv_entry by namespace. Each Namespace satisfies
history.KV:

	store := db.NewKVStore(conn, db.DialectSQLite)
	hist := history.NewStore(store.Namespace(sessionID))

Writes are upserts (ON CONFLICT ... DO UPDATE), which both databases
support. Queries use $N placeholders; they are rewritten to ? for
SQLite.
*/
package db
