// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// KVStore keeps string values in the kv_entry table, partitioned by
// namespace. Queries are written with $N placeholders and rebound for
// SQLite.
type KVStore struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewKVStore(db *sql.DB, dialect Dialect) *KVStore {
	return &KVStore{db: db, dialect: dialect, now: time.Now}
}

// Namespace returns a KV view limited to one namespace
func (s *KVStore) Namespace(name string) *Namespace {
	return &Namespace{store: s, name: name}
}

// Namespaces lists namespaces that hold at least one key,
// most recently written first
func (s *KVStore) Namespaces() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT namespace FROM kv_entry
		GROUP BY namespace
		ORDER BY MAX(updated_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *KVStore) rebind(query string) string {
	if s.dialect != DialectSQLite {
		return query
	}
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				b.WriteByte('?')
				i = j - 1
				continue
			}
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Namespace implements history.KV over one namespace of a KVStore
type Namespace struct {
	store *KVStore
	name  string
}

func (n *Namespace) Name() string {
	return n.name
}

func (n *Namespace) Get(key string) (string, bool, error) {
	var value string
	err := n.store.db.QueryRow(n.store.rebind(`
		SELECT value FROM kv_entry WHERE namespace = $1 AND entry_key = $2
	`), n.name, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s/%s: %w", n.name, key, err)
	}
	return value, true, nil
}

func (n *Namespace) Set(key, value string) error {
	_, err := n.store.db.Exec(n.store.rebind(`
		INSERT INTO kv_entry (namespace, entry_key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, entry_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`), n.name, key, value, n.store.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", n.name, key, err)
	}
	return nil
}

func (n *Namespace) Remove(key string) error {
	_, err := n.store.db.Exec(n.store.rebind(`
		DELETE FROM kv_entry WHERE namespace = $1 AND entry_key = $2
	`), n.name, key)
	if err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", n.name, key, err)
	}
	return nil
}
