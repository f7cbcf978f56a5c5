// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed web
var webFiles embed.FS

// maxAssetSize bounds a single upstream response body
const maxAssetSize = 8 << 20

// Asset is a fetched response kept in a cache
type Asset struct {
	Status      int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status
func (a *Asset) OK() bool {
	return a.Status >= 200 && a.Status < 300
}

// Origin is the network side of the worker. An error means the origin
// could not be reached; an unsuccessful HTTP status is still an Asset.
type Origin interface {
	Fetch(ctx context.Context, path string) (*Asset, error)
}

// Web returns the embedded calculator shell rooted at its top directory
func Web() fs.FS {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}
	return sub
}

// FSOrigin serves assets from a file system
type FSOrigin struct {
	fsys fs.FS
}

func NewFSOrigin(fsys fs.FS) *FSOrigin {
	return &FSOrigin{fsys: fsys}
}

func (o *FSOrigin) Fetch(ctx context.Context, p string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" {
		name = "index.html"
	}

	info, err := fs.Stat(o.fsys, name)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return notFound(), nil
	}
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(o.fsys, name)
	if err != nil {
		return nil, err
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	return &Asset{Status: http.StatusOK, ContentType: ctype, Body: data}, nil
}

func notFound() *Asset {
	return &Asset{
		Status:      http.StatusNotFound,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("404 page not found\n"),
	}
}

// HTTPOrigin fetches assets from an upstream server, e.g. a dev server
type HTTPOrigin struct {
	base   string
	client *http.Client
}

func NewHTTPOrigin(base string, client *http.Client) (*HTTPOrigin, error) {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("asset upstream must be an http(s) URL: %q", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPOrigin{base: strings.TrimRight(base, "/"), client: client}, nil
}

func (o *HTTPOrigin) Fetch(ctx context.Context, p string) (*Asset, error) {
	url := o.base + p
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return &Asset{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
