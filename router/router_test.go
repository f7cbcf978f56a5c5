// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-calc/assets"
	"github.com/danielhkuo/quickly-calc/models"
	"github.com/danielhkuo/quickly-calc/testutil"
)

func newTestRouter(t *testing.T, site http.Handler) *http.ServeMux {
	t.Helper()
	return NewRouter(testutil.SetupTestStore(t), testutil.GetTestConfig(), site)
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t, nil)

	w := serve(mux, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestAPIEndpoint(t *testing.T) {
	mux := newTestRouter(t, nil)

	w := serve(mux, httptest.NewRequest("GET", "/api", nil))
	expected := "quickly-calc API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t, nil)
	id := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	// 400, 401, 404 are all valid handler responses here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/api"},
		{"POST", "/api/evaluate"},
		{"POST", "/api/sessions"},
		{"GET", "/api/sessions/" + id},
		{"POST", "/api/sessions/" + id + "/input"},
		{"GET", "/api/sessions/" + id + "/history"},
		{"DELETE", "/api/sessions/" + id + "/history"},
		{"POST", "/api/sessions/" + id + "/history/0/recall"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound && w.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Route %s %s returned %d, expected a handler", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t, nil)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/api/evaluate"},
		{"PUT", "/api/sessions/abc/history"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405, got %d", w.Code)
			}
		})
	}
}

func TestSessionFlowThroughRouter(t *testing.T) {
	mux := newTestRouter(t, nil)

	w := serve(mux, testutil.MakeRequest("POST", "/api/sessions", nil, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var session models.CreateSessionResponse
	testutil.AssertJSON(t, w, &session)

	base := "/api/sessions/" + session.SessionID
	headers := testutil.SessionHeaders(session.SessionToken)

	for _, k := range []string{"1", "2", "×", "3"} {
		w = serve(mux, testutil.MakeRequest("POST", base+"/input", models.InputRequest{Key: k}, headers))
		testutil.AssertStatus(t, w, http.StatusOK)
	}
	w = serve(mux, testutil.MakeRequest("POST", base+"/input", models.InputRequest{Keyboard: "Enter"}, headers))
	var state models.SessionState
	testutil.AssertJSON(t, w, &state)
	if state.Display != "36" {
		t.Fatalf("Expected 36, got %+v", state)
	}

	w = serve(mux, testutil.MakeRequest("GET", base+"/history", nil, headers))
	var hist models.HistoryResponse
	testutil.AssertJSON(t, w, &hist)
	if len(hist.Entries) != 1 || hist.Entries[0].Expression != "12×3" {
		t.Fatalf("Unexpected history: %+v", hist.Entries)
	}

	w = serve(mux, testutil.MakeRequest("POST", base+"/history/0/recall", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(mux, testutil.MakeRequest("DELETE", base+"/history", nil, headers))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// no token
	w = serve(mux, testutil.MakeRequest("GET", base, nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestWebShell(t *testing.T) {
	worker := assets.NewWorker(assets.NewFSOrigin(assets.Web()), assets.NewCache(), "test")
	if err := worker.Install(context.Background()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	mux := newTestRouter(t, worker)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html")
	w := serve(mux, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Simple Calculator") {
		t.Errorf("Expected the calculator page, got %d", w.Code)
	}

	w = serve(mux, httptest.NewRequest("GET", "/calculator.js", nil))
	if w.Header().Get("X-Cache") != assets.CacheHit {
		t.Errorf("Expected a cache hit, got %q", w.Header().Get("X-Cache"))
	}

	// API routes still win over the catch-all
	w = serve(mux, httptest.NewRequest("GET", "/api", nil))
	if w.Body.String() != "quickly-calc API v1" {
		t.Errorf("Expected the API banner, got %q", w.Body.String())
	}
}

func TestNoWebShell(t *testing.T) {
	mux := newTestRouter(t, nil)

	w := serve(mux, httptest.NewRequest("GET", "/index.html", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a site handler, got %d", w.Code)
	}
}
