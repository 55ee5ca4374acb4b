// Package fetch implements the Transport interface.
// It posts form-encoded requests to the archive and returns the raw body.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://libraryofbabel.info/"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "babelpipe/1.0 (https://github.com/gaurav-prasanna/babelpipe)"
)

// HTTPFetcher posts forms to the archive over HTTP.
type HTTPFetcher struct {
	baseURL   *url.URL
	userAgent string
	client    *http.Client
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-request timeout. It applies to a client given
// with WithHTTPClient as well, without modifying that client.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.timeout = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithHTTPClient replaces the underlying client. Its own timeout is kept
// unless WithTimeout is also given.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) { f.logger = l }
}

// New creates an HTTPFetcher for the archive at baseURL.
// An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) (*HTTPFetcher, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %s (must include scheme, e.g. https://example.com)", baseURL)
	}

	f := &HTTPFetcher{
		baseURL:   parsed,
		userAgent: DefaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	switch {
	case f.client == nil:
		timeout := f.timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		f.client = &http.Client{Timeout: timeout}
	case f.timeout > 0:
		client := *f.client
		client.Timeout = f.timeout
		f.client = &client
	}
	return f, nil
}

// Post sends form to endpoint and returns the response body as text.
func (f *HTTPFetcher) Post(ctx context.Context, endpoint string, form url.Values) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	target := f.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	f.logger.Debug("archive response",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, target)
	}
	return string(body), nil
}
