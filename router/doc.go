// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickly-calc API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, worker)

The third argument serves the web shell, normally an assets.Worker. Pass
nil to expose the API alone.

# Endpoints

Health and version:

	GET /health
	GET /api

Evaluation (public):

	POST /api/evaluate - Evaluate one expression

Sessions (requires X-Session-Token, except creation):

	POST   /api/sessions                             - Create session
	GET    /api/sessions/{id}                        - Display state
	POST   /api/sessions/{id}/input                  - Key, action or keyboard input
	GET    /api/sessions/{id}/history                - History, newest first
	DELETE /api/sessions/{id}/history                - Clear history
	POST   /api/sessions/{id}/history/{index}/recall - Load a past result

Web shell:

	GET / - Everything else, through the asset cache

Every handler except health and version is wrapped in
middleware.WithLogging. Request IDs and CORS are applied around the whole
mux by the server.
*/
package router
