// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assets serves the calculator web shell with offline support.

A Worker sits in front of an Origin (the embedded files, or an upstream
dev server) and keeps a versioned copy of the app shell in a Cache:

	w := assets.NewWorker(assets.NewFSOrigin(assets.Web()), assets.NewCache(), "v1")
	if err := w.Install(ctx); err != nil { ... }
	w.Activate()
	mux.Handle("GET /", w)

# Policies

Navigation requests (Sec-Fetch-Mode: navigate, or Accept containing
text/html) go to the origin first and refresh the cache. When the origin is
unreachable the cached page is served, then the offline page, then a 503.

Other requests are served from the cache first. Misses go to the origin;
successful scripts, styles and images are added to the cache. When the
origin is unreachable an image request falls back to the app icon.

The X-Cache header reports HIT, MISS, NETWORK, STALE or OFFLINE.

# Versions

Caches are named calculator-pwa-<version>. Activate removes every cache
whose name differs from the worker's, so bumping the version evicts the
previous shell.
*/
package assets
