// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-calc/calc"
	"github.com/danielhkuo/quickly-calc/db"
	"github.com/danielhkuo/quickly-calc/history"
	"github.com/danielhkuo/quickly-calc/models"
)

// session is one calculator screen. Its mutex serializes every
// operation on the controller and history.
type session struct {
	mu      sync.Mutex
	id      string
	ctrl    *calc.Controller
	history *history.Store
}

// state must be called with mu held
func (s *session) state() models.SessionState {
	st := models.SessionState{
		Display:    s.ctrl.Display(),
		Expression: s.ctrl.Buffer().Text(),
	}
	if msg, left := s.ctrl.ErrorText(); msg != "" {
		st.Error = msg
		// round up so a visible error never reports a zero TTL
		st.ErrorTTLMs = int64((left + time.Millisecond - 1) / time.Millisecond)
	}
	return st
}

// sessionRegistry holds live sessions in memory. History lives in the
// KV store under the session's namespace, so it outlives the process.
type sessionRegistry struct {
	mu       sync.Mutex
	store    *db.KVStore
	now      func() time.Time
	sessions map[string]*session
}

func newSessionRegistry(store *db.KVStore, now func() time.Time) *sessionRegistry {
	if now == nil {
		now = time.Now
	}
	return &sessionRegistry{
		store:    store,
		now:      now,
		sessions: make(map[string]*session),
	}
}

// get returns the session for id, creating it with an empty buffer if it
// is not live. The caller must have authenticated id.
func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}

	store := history.NewStore(r.store.Namespace(SessionNamespace(id)), history.WithClock(r.now))
	notifier := calc.NotifierFunc(func(title, body string) {
		slog.Info("notification", "session_id", id, "title", title, "body", body)
	})

	s := &session{
		id:      id,
		history: store,
		ctrl: calc.NewController(calc.NewBuffer(), store,
			calc.WithNotifier(notifier),
			calc.WithClock(r.now),
		),
	}
	r.sessions[id] = s
	return s
}

// Len counts live sessions
func (r *sessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// SessionNamespace is the KV namespace holding a session's history
func SessionNamespace(id string) string {
	return "session:" + id
}
