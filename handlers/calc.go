// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-calc/auth"
	"github.com/danielhkuo/quickly-calc/calc"
	"github.com/danielhkuo/quickly-calc/cliparse"
	"github.com/danielhkuo/quickly-calc/db"
	"github.com/danielhkuo/quickly-calc/history"
	"github.com/danielhkuo/quickly-calc/middleware"
	"github.com/danielhkuo/quickly-calc/models"
	"github.com/dustin/go-humanize"
)

// SessionTokenHeader carries the session token
const SessionTokenHeader = "X-Session-Token"

// keypadGlyphs are the values a keypad button may send
var keypadGlyphs = map[string]bool{
	"0": true, "1": true, "2": true, "3": true, "4": true,
	"5": true, "6": true, "7": true, "8": true, "9": true,
	calc.GlyphDecimal: true, calc.GlyphPercent: true,
	calc.GlyphPlus: true, "-": true, calc.GlyphMinus: true,
	calc.GlyphTimes: true, calc.GlyphDivide: true,
	"(": true, ")": true,
}

type CalcHandler struct {
	cfg      cliparse.Config
	sessions *sessionRegistry
	now      func() time.Time
}

type CalcOption func(*CalcHandler)

// WithClock replaces time.Now for error display and history timestamps
func WithClock(now func() time.Time) CalcOption {
	return func(h *CalcHandler) { h.now = now }
}

func NewCalcHandler(store *db.KVStore, cfg cliparse.Config, opts ...CalcOption) *CalcHandler {
	h := &CalcHandler{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.sessions = newSessionRegistry(store, h.now)
	return h
}

// Evaluate handles POST /api/evaluate. Stateless, nothing is recorded.
func (h *CalcHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Expression) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "expression is required")
		return
	}

	v, err := calc.Evaluate(req.Expression)
	if err != nil {
		msg := calc.MessageError
		if errors.Is(err, calc.ErrInvalidInput) {
			msg = calc.MessageInvalidInput
		}
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EvaluateResponse{
		Expression: req.Expression,
		Result:     calc.FormatResult(v),
	})
}

// CreateSession handles POST /api/sessions
func (h *CalcHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := auth.NewSessionID()
	h.sessions.get(id)

	slog.Info("session created", "session_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:    id,
		SessionToken: auth.GenerateSessionToken(id, h.cfg.SessionSalt),
	})
}

// GetSession handles GET /api/sessions/{id}
func (h *CalcHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	middleware.JSONResponse(w, http.StatusOK, s.state())
}

// Input handles POST /api/sessions/{id}/input
func (h *CalcHandler) Input(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.InputRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	set := 0
	for _, v := range []string{req.Key, req.Action, req.Keyboard} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exactly one of key, action or keyboard is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// evaluation errors surface through the state, not the status code
	switch {
	case req.Key != "":
		if !keypadGlyphs[req.Key] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown key")
			return
		}
		s.ctrl.Press(req.Key)
	case req.Action != "":
		action, err := calc.ParseAction(req.Action)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown action")
			return
		}
		_ = s.ctrl.Do(action)
	default:
		_, _ = s.ctrl.Key(req.Keyboard)
	}

	middleware.JSONResponse(w, http.StatusOK, s.state())
}

// GetHistory handles GET /api/sessions/{id}/history
func (h *CalcHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	entries := s.history.List()
	s.mu.Unlock()

	now := h.now()
	resp := models.HistoryResponse{Entries: make([]models.HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.HistoryEntry{
			Expression: e.Expression,
			Result:     e.Result,
			TS:         e.TS,
			Ago:        humanize.RelTime(e.Time(), now, "ago", "from now"),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ClearHistory handles DELETE /api/sessions/{id}/history
func (h *CalcHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.history.Clear(); err != nil {
		slog.Error("failed to clear history", "session_id", s.id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	slog.Info("history cleared", "session_id", s.id)
	w.WriteHeader(http.StatusNoContent)
}

// RecallHistory handles POST /api/sessions/{id}/history/{index}/recall
func (h *CalcHandler) RecallHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be a number")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.history.Get(index)
	if errors.Is(err, history.ErrNoEntry) {
		middleware.ErrorResponse(w, http.StatusNotFound, "History entry not found")
		return
	}
	if err != nil {
		slog.Error("failed to read history", "session_id", s.id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read history")
		return
	}

	s.ctrl.Recall(entry.Result)
	middleware.JSONResponse(w, http.StatusOK, s.state())
}

// authorize checks the session token and returns the session, reviving
// it when the token is valid but the session is not live. On failure the
// error response has been written.
func (h *CalcHandler) authorize(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := r.PathValue("id")
	token := r.Header.Get(SessionTokenHeader)

	switch err := auth.ValidateSessionToken(id, token, h.cfg.SessionSalt); {
	case errors.Is(err, auth.ErrInvalidSessionID):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid session id")
		return nil, false
	case err != nil:
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return nil, false
	}

	return h.sessions.get(id), true
}
