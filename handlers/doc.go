// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickly-calc API.

# Handler Types

CalcHandler serves stateless evaluation and calculator sessions. It is
created from a KV store and the config:

	h := handlers.NewCalcHandler(store, cfg)

# Evaluation

	POST /api/evaluate → Evaluate

Evaluates a single expression without touching any session or history.
Evaluation failures return 422 with the message the calculator would
display: "Invalid input" or "Error".

# Sessions

A session is one calculator screen: a buffer, a transient error display and
a history. Sessions live in memory; history is stored in the KV store under
the namespace "session:<id>".

	POST   /api/sessions                             → CreateSession
	GET    /api/sessions/{id}                        → GetSession
	POST   /api/sessions/{id}/input                  → Input
	GET    /api/sessions/{id}/history                → GetHistory
	DELETE /api/sessions/{id}/history                → ClearHistory
	POST   /api/sessions/{id}/history/{index}/recall → RecallHistory

Session operations require the X-Session-Token header returned by
CreateSession. A valid token for a session that is not live, e.g. after a
restart, brings it back with an empty buffer and its stored history.

Operations on one session are serialized. Different sessions never share
state.

# Input

The input body carries exactly one of:

	{"key": "7"}          keypad glyph: digits . % + - − × ÷ ( )
	{"action": "equals"}  clear, back, percent, equals or negate
	{"keyboard": "Enter"} physical key name; unknown keys are ignored

Every input returns the session state. While an evaluation error is
visible the state carries error and error_ttl_ms.
*/
package handlers
