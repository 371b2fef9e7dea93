package fetch

import (
	"context"
	"net/http"
	neturl "net/url"
	"sync"
)

// The package-level functions below serve the ad-hoc, one-expression
// use case on a shared default Fetcher. Applications wanting their own
// transport or codec should construct a Fetcher with New instead.

var (
	defaultMu      sync.Mutex
	defaultFetcher *Fetcher
)

// Default returns the shared Fetcher, building it on first use.
func Default() *Fetcher {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultFetcher == nil {
		defaultFetcher = New()
	}
	return defaultFetcher
}

// SetDefault replaces the shared Fetcher. Call it during application
// startup, before any package-level function is used.
func SetDefault(f *Fetcher) {
	if f == nil {
		return
	}
	defaultMu.Lock()
	defaultFetcher = f
	defaultMu.Unlock()
}

// Get fetches url with the default Fetcher.
func Get(ctx context.Context, url string) (string, error) { return Default().Get(ctx, url) }

// Head fetches the headers of url with the default Fetcher.
func Head(ctx context.Context, url string) (http.Header, error) { return Default().Head(ctx, url) }

// GetPrint streams url's body to stdout with the default Fetcher.
func GetPrint(ctx context.Context, url string) (int, error) { return Default().GetPrint(ctx, url) }

// GetStore downloads url into path with the default Fetcher.
func GetStore(ctx context.Context, url, path string) (int, error) {
	return Default().GetStore(ctx, url, path)
}

// Mirror conditionally downloads url into path with the default Fetcher.
func Mirror(ctx context.Context, url, path string) (int, error) {
	return Default().Mirror(ctx, url, path)
}

// PostForm posts urlencoded fields with the default Fetcher.
func PostForm(ctx context.Context, url string, fields neturl.Values) (string, error) {
	return Default().PostForm(ctx, url, fields)
}

// PostJSON posts codec-encoded data with the default Fetcher.
func PostJSON(ctx context.Context, url string, data any) (string, error) {
	return Default().PostJSON(ctx, url, data)
}

// PostFile streams the file at path as a POST body with the default Fetcher.
func PostFile(ctx context.Context, url, path, contentType string) (string, error) {
	return Default().PostFile(ctx, url, path, contentType)
}
