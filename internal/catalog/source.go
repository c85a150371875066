package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Source fetches raw content documents by name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// String describes the source for logs and error messages.
	String() string
}

// DirSource reads documents from a filesystem, typically a local "dados"
// directory.
type DirSource struct {
	FS   fs.FS
	Root string // for display only
}

// NewDirSource returns a source reading from dir.
func NewDirSource(dir string) DirSource {
	return DirSource{FS: os.DirFS(dir), Root: dir}
}

func (d DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(d.FS, name)
}

func (d DirSource) String() string {
	if d.Root == "" {
		return "fs"
	}
	return d.Root
}

// HTTPSource fetches documents relative to a base URL. Each fetch is a
// single GET with no retry; the caller's context bounds it.
type HTTPSource struct {
	BaseURL *url.URL
	Client  *http.Client
}

// NewHTTPSource parses base and returns a source using http.DefaultClient.
func NewHTTPSource(base string) (*HTTPSource, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse content url: %w", err)
	}
	return &HTTPSource{BaseURL: u, Client: http.DefaultClient}, nil
}

func (h *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := h.BaseURL.ResolveReference(&url.URL{Path: name})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (h *HTTPSource) String() string {
	return h.BaseURL.String()
}

// OpenSource picks an HTTP source for http(s) locations and a directory
// source otherwise. A missing directory makes the catalog unavailable.
func OpenSource(location string) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("content location is required")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, unavailable(CatalogDocument, fmt.Errorf("content directory: %w", err))
	}
	if !info.IsDir() {
		return nil, unavailable(CatalogDocument, fmt.Errorf("content directory: %s is not a directory", location))
	}
	return NewDirSource(location), nil
}
