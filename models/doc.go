// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - EvaluateRequest: expression
  - InputRequest: key (keypad glyph), action, or keyboard (physical key)

# Response Types

  - EvaluateResponse: expression, result
  - CreateSessionResponse: session_id, session_token
  - SessionState: display, expression, error, error_ttl_ms
  - HistoryResponse: entries of expression, result, ts, ago
  - ErrorResponse: error, message

Actions accepted by InputRequest are clear, back, percent, equals and
negate.
*/
package models
