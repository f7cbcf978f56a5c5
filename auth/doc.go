// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and session tokens.

# Session IDs

Each calculator session is identified by a random UUID:

	id := auth.NewSessionID()
	err := auth.ValidateSessionID(id)

Only the canonical lower-case form is accepted, so one session maps to
exactly one storage namespace.

# Session Tokens

Session tokens use HMAC-SHA256 to create deterministic, verifiable tokens:

	token := auth.GenerateSessionToken(id, salt)
	err := auth.ValidateSessionToken(id, token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, the same session ID and salt always produce the same
token. This allows validation without storing the token, and lets a
session survive a server restart.
*/
package auth
