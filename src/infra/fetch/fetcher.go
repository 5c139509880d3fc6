// Package fetch performs outbound HTTP GETs with a browser identity,
// bounded retry-with-backoff and an optional best-effort proxy chain.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122 Safari/537.36"
	defaultTimeout   = 12 * time.Second
	defaultRetries   = 3
	defaultBackoff   = 300 * time.Millisecond
)

// Config controls a Fetcher. Zero values fall back to defaults.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Retries   int
	Backoff   time.Duration
	// Proxies is an ordered list of URL rewrite templates, each with a
	// single %s slot receiving the escaped target URL. They are tried in
	// sequence before the direct URL; the first non-empty body wins.
	Proxies []string
}

// Error is returned once every attempt at a URL has failed.
type Error struct {
	URL  string
	Last error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Last) }
func (e *Error) Unwrap() error { return e.Last }

// Fetcher is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	cfg    Config
}

// New builds a Fetcher. Extra middlewares are applied after the
// user-agent middleware, so callers can add per-source headers or rate
// limits.
func New(cfg Config, middlewares ...Middleware) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = defaultBackoff
	}

	mws := append([]Middleware{WithUserAgent(cfg.UserAgent), WithLogging()}, middlewares...)
	client := Wrap(&http.Client{Timeout: cfg.Timeout}, Chain(mws...))
	return &Fetcher{client: client, cfg: cfg}
}

// Fetch gets the body at target as text. Configured proxies are tried
// once each first; the direct URL then gets the full retry budget. The
// proxy chain is a resilience strategy only, never a correctness
// guarantee.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	for _, tmpl := range f.cfg.Proxies {
		if !strings.Contains(tmpl, "%s") {
			continue
		}
		proxied := fmt.Sprintf(tmpl, url.QueryEscape(target))
		body, err := f.attempt(ctx, proxied)
		if err == nil && body != "" {
			return body, nil
		}
		slog.Debug("proxy attempt failed", "proxy", tmpl, "target", target, "error", err)
	}
	return f.fetchRetry(ctx, target)
}

func (f *Fetcher) fetchRetry(ctx context.Context, target string) (string, error) {
	var last error
	for i := 0; i < f.cfg.Retries; i++ {
		if i > 0 {
			select {
			case <-time.After(f.cfg.Backoff * time.Duration(i)):
			case <-ctx.Done():
				return "", &Error{URL: target, Last: ctx.Err()}
			}
		}
		body, err := f.attempt(ctx, target)
		if err == nil {
			return body, nil
		}
		last = err
	}
	return "", &Error{URL: target, Last: last}
}

func (f *Fetcher) attempt(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
