// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// Exactly one of Key, Action or Keyboard is expected.
// Key is a keypad glyph, Keyboard a physical key name such as "Enter".
type InputRequest struct {
	Key      string `json:"key,omitempty"`
	Action   string `json:"action,omitempty"`
	Keyboard string `json:"keyboard,omitempty"`
}

// Response types

type EvaluateResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

type CreateSessionResponse struct {
	SessionID    string `json:"session_id"`
	SessionToken string `json:"session_token"`
}

// SessionState is what the display shows right now. Error is set only
// while a transient evaluation error is visible.
type SessionState struct {
	Display    string `json:"display"`
	Expression string `json:"expression"`
	Error      string `json:"error,omitempty"`
	ErrorTTLMs int64  `json:"error_ttl_ms,omitempty"`
}

type HistoryEntry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	TS         int64  `json:"ts"` // epoch milliseconds
	Ago        string `json:"ago"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
