// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-calc/auth"
	"github.com/danielhkuo/quickly-calc/cliparse"
	"github.com/danielhkuo/quickly-calc/db"
)

// TestSessionSalt signs session tokens in tests
const TestSessionSalt = "test-session-salt"

var dbSeq atomic.Int64

// SetupTestDB opens a private in-memory SQLite database with the full
// schema. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// shared cache with a unique name keeps parallel tests apart
	url := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := db.Open(db.DialectSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SetupTestStore wraps SetupTestDB in a KV store
func SetupTestStore(t *testing.T) *db.KVStore {
	t.Helper()
	return db.NewKVStore(SetupTestDB(t), db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.Port = 3318
	cfg.DatabaseURL = "file::memory:"
	cfg.SessionSalt = TestSessionSalt
	return cfg
}

// CreateTestSession returns a fresh session ID and its valid token
func CreateTestSession(cfg cliparse.Config) (sessionID, token string) {
	sessionID = auth.NewSessionID()
	return sessionID, auth.GenerateSessionToken(sessionID, cfg.SessionSalt)
}

// SessionHeaders builds the header map for an authenticated request
func SessionHeaders(token string) map[string]string {
	return map[string]string{"X-Session-Token": token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
