// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidSessionID    = errors.New("invalid session id")
)

// NewSessionID creates a random UUID identifying a calculator session
func NewSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID checks that id is a canonical UUID string
func ValidateSessionID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		return ErrInvalidSessionID
	}
	return nil
}

// GenerateSessionToken creates an HMAC-based token for a session.
// This is deterministic and verifiable, so the server keeps no token table.
func GenerateSessionToken(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSessionToken checks if the provided token is valid for the session
func ValidateSessionToken(sessionID, token, salt string) error {
	if err := ValidateSessionID(sessionID); err != nil {
		return err
	}
	expected := GenerateSessionToken(sessionID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidSessionToken
	}
	return nil
}
