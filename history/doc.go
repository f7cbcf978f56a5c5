// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package history keeps the log of successful evaluations.

# Storage

The log is a JSON array stored under a single key of an injected KV:

	[{"expression":"7+3","result":"10","ts":1736000000000}, ...]

Newest entries come first and at most Limit (30) are kept; older
entries are dropped on append, by insertion order.

KV implementations:

  - MemoryKV: in-process map
  - db.KVStore namespaces: SQLite or PostgreSQL table

# Failure Handling

List never fails. An absent key, a storage error, or a value that is
not a JSON array of entries all read as an empty history. Append and
Clear return storage errors so callers can log them; the calculator
keeps working either way.

# Recall

Store.Get(i) returns the i-th entry newest first. Recalling an entry
puts its Result, not its Expression, back into the buffer.
*/
package history
