// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-calc/cliparse"
	"github.com/danielhkuo/quickly-calc/db"
	"github.com/danielhkuo/quickly-calc/handlers"
	"github.com/danielhkuo/quickly-calc/middleware"
)

// NewRouter registers the API on a new mux. site, when not nil, serves
// every other GET path (the web shell).
func NewRouter(store *db.KVStore, cfg cliparse.Config, site http.Handler, opts ...handlers.CalcOption) *http.ServeMux {
	mux := http.NewServeMux()

	calcHandler := handlers.NewCalcHandler(store, cfg, opts...)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-calc API v1"))
	})

	// Stateless evaluation
	mux.HandleFunc("POST /api/evaluate", middleware.WithLogging(calcHandler.Evaluate))

	// Sessions (require X-Session-Token)
	mux.HandleFunc("POST /api/sessions", middleware.WithLogging(calcHandler.CreateSession))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.WithLogging(calcHandler.GetSession))
	mux.HandleFunc("POST /api/sessions/{id}/input", middleware.WithLogging(calcHandler.Input))
	mux.HandleFunc("GET /api/sessions/{id}/history", middleware.WithLogging(calcHandler.GetHistory))
	mux.HandleFunc("DELETE /api/sessions/{id}/history", middleware.WithLogging(calcHandler.ClearHistory))
	mux.HandleFunc("POST /api/sessions/{id}/history/{index}/recall", middleware.WithLogging(calcHandler.RecallHistory))

	// Web shell
	if site != nil {
		mux.HandleFunc("GET /", middleware.WithLogging(site.ServeHTTP))
	}

	return mux
}
