// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	// Key is the storage key the history list lives under
	Key = "calculator_history_v1"

	// Limit is the maximum number of entries kept
	Limit = 30
)

var ErrNoEntry = errors.New("history entry not found")

// Entry is one successful evaluation. Expression is the raw buffer text
// before normalization; TS is epoch milliseconds.
type Entry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	TS         int64  `json:"ts"`
}

// Time returns the entry timestamp
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.TS)
}

// Store is a bounded, newest-first log of evaluations kept as a JSON
// array under Key. Reads never fail: absent or corrupt data is an
// empty history, and elements that do not decode are skipped.
type Store struct {
	kv  KV
	key string
	now func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides time.Now for entry timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithKey stores the list under a different key
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{kv: kv, key: Key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the entries newest first; never nil
func (s *Store) List() []Entry {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		slog.Warn("failed to load history", "error", err)
		return []Entry{}
	}
	if !ok || raw == "" {
		return []Entry{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding unreadable history", "error", err)
		return []Entry{}
	}

	// a bad element costs only itself
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		var e *Entry
		if err := json.Unmarshal(item, &e); err != nil || e == nil {
			slog.Warn("skipping unreadable history entry", "index", i, "error", err)
			continue
		}
		entries = append(entries, *e)
	}
	return entries
}

// Append records an evaluation at the front of the list and drops
// whatever falls past Limit.
func (s *Store) Append(expression, result string) error {
	entries := s.List()

	entry := Entry{
		Expression: expression,
		Result:     result,
		TS:         s.now().UnixMilli(),
	}
	entries = append([]Entry{entry}, entries...)
	if len(entries) > Limit {
		entries = entries[:Limit]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Get returns the i-th entry, newest first
func (s *Store) Get(i int) (Entry, error) {
	entries := s.List()
	if i < 0 || i >= len(entries) {
		return Entry{}, fmt.Errorf("%w: index %d", ErrNoEntry, i)
	}
	return entries[i], nil
}

// Clear removes the stored list entirely
func (s *Store) Clear() error {
	if err := s.kv.Remove(s.key); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
