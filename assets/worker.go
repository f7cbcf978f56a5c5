// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	CachePrefix    = "calculator-pwa-"
	OfflinePage    = "/offline.html"
	FallbackIcon   = "/icons/icon.svg"
	OfflineMessage = "Offline - simple calculator is not available right now."

	// Cache status reported in the X-Cache response header
	CacheHit     = "HIT"
	CacheMiss    = "MISS"
	CacheNetwork = "NETWORK"
	CacheStale   = "STALE"
	CacheOffline = "OFFLINE"
)

// Manifest is the app shell precached on install
var Manifest = []string{
	"/",
	"/index.html",
	"/calculator.css",
	"/calculator.js",
	"/manifest.json",
	OfflinePage,
	FallbackIcon,
}

var ErrPrecache = errors.New("precache failed")

// Worker serves the calculator shell through a versioned cache, keeping it
// usable while the origin is unreachable.
type Worker struct {
	origin      Origin
	cache       *Cache
	name        string
	manifest    []string
	concurrency int
}

type WorkerOption func(*Worker)

// WithManifest overrides the precached paths
func WithManifest(paths []string) WorkerOption {
	return func(w *Worker) { w.manifest = paths }
}

// WithConcurrency bounds parallel fetches during Install
func WithConcurrency(n int) WorkerOption {
	return func(w *Worker) { w.concurrency = n }
}

func NewWorker(origin Origin, cache *Cache, version string, opts ...WorkerOption) *Worker {
	w := &Worker{
		origin:      origin,
		cache:       cache,
		name:        CachePrefix + version,
		manifest:    Manifest,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CacheName is the versioned cache this worker owns
func (w *Worker) CacheName() string {
	return w.name
}

// Install precaches the manifest. Either every asset is stored or none is.
func (w *Worker) Install(ctx context.Context) error {
	fetched := make([]*Asset, len(w.manifest))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for i, p := range w.manifest {
		g.Go(func() error {
			a, err := w.origin.Fetch(ctx, p)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrPrecache, p, err)
			}
			if !a.OK() {
				return fmt.Errorf("%w: %s: status %d", ErrPrecache, p, a.Status)
			}
			fetched[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, p := range w.manifest {
		w.cache.Put(w.name, p, fetched[i])
	}
	slog.Info("asset cache installed", "cache", w.name, "assets", len(w.manifest))
	return nil
}

// Activate deletes every cache other than this worker's and returns their names
func (w *Worker) Activate() []string {
	var deleted []string
	for _, name := range w.cache.Names() {
		if name == w.name {
			continue
		}
		if w.cache.Delete(name) {
			slog.Info("deleting old cache", "cache", name)
			deleted = append(deleted, name)
		}
	}
	return deleted
}

func (w *Worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if isNavigation(r) {
		w.serveNavigation(rw, r)
		return
	}
	w.serveStatic(rw, r)
}

// Navigations go to the network first so a fresh shell wins when online
func (w *Worker) serveNavigation(rw http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	a, err := w.origin.Fetch(r.Context(), p)
	if err == nil {
		if a.OK() {
			w.cache.Put(w.name, p, a)
		}
		writeAsset(rw, r, a, CacheNetwork)
		return
	}

	slog.Warn("origin unreachable, serving navigation from cache", "path", p, "error", err)
	if cached, ok := w.cache.Match(p); ok {
		writeAsset(rw, r, cached, CacheStale)
		return
	}
	if offline, ok := w.cache.Match(OfflinePage); ok {
		writeAsset(rw, r, offline, CacheOffline)
		return
	}
	writeOffline(rw)
}

// Everything else is served from cache first
func (w *Worker) serveStatic(rw http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	if cached, ok := w.cache.Match(p); ok {
		writeAsset(rw, r, cached, CacheHit)
		return
	}

	a, err := w.origin.Fetch(r.Context(), p)
	if err == nil {
		if a.OK() && isCacheable(r) {
			w.cache.Put(w.name, p, a)
		}
		writeAsset(rw, r, a, CacheMiss)
		return
	}

	slog.Warn("origin unreachable", "path", p, "error", err)
	if destination(r) == "image" {
		if icon, ok := w.cache.Match(FallbackIcon); ok {
			writeAsset(rw, r, icon, CacheOffline)
			return
		}
	}
	writeOffline(rw)
}

func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func isCacheable(r *http.Request) bool {
	switch destination(r) {
	case "script", "style", "image":
		return true
	}
	return false
}

// destination prefers Sec-Fetch-Dest and falls back to the file extension
func destination(r *http.Request) string {
	if dest := r.Header.Get("Sec-Fetch-Dest"); dest != "" {
		return dest
	}
	switch strings.ToLower(path.Ext(r.URL.Path)) {
	case ".js", ".mjs":
		return "script"
	case ".css":
		return "style"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico":
		return "image"
	}
	return ""
}

func writeAsset(rw http.ResponseWriter, r *http.Request, a *Asset, status string) {
	if a.ContentType != "" {
		rw.Header().Set("Content-Type", a.ContentType)
	}
	rw.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	rw.Header().Set("X-Cache", status)
	rw.WriteHeader(a.Status)
	if r.Method != http.MethodHead {
		rw.Write(a.Body)
	}
}

func writeOffline(rw http.ResponseWriter) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.Header().Set("X-Cache", CacheOffline)
	rw.WriteHeader(http.StatusServiceUnavailable)
	rw.Write([]byte(OfflineMessage))
}
