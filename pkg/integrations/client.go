package integrations

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/observability"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 16 << 20

// Client provides shared HTTP functionality for remote service clients.
// It handles result caching and common request headers. Requests are sent
// exactly once: there is no retry on any failure.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string
}

// NewClient creates a Client with the given cache and default headers.
// A nil cache disables caching. Pass nil for headers if no default headers
// are needed.
func NewClient(c cache.Cache, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(),
		cache:   c,
		headers: headers,
	}
}

// WithTimeout replaces the request timeout. Zero keeps the default.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.http.Timeout = d
	}
	return c
}

// Close releases the cache backend.
func (c *Client) Close() error {
	return c.cache.Close()
}

// Cached returns the bytes stored under key or calls fetch and stores its
// result for ttl. If refresh is true the cache is not consulted, but a
// successful result is still written. Failed fetches are never cached.
//
// kind labels the entry for [observability.CacheHooks].
func (c *Client) Cached(ctx context.Context, kind, key string, ttl time.Duration, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			hooks.OnCacheHit(ctx, kind)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, kind)
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, kind, len(data))
	}
	return data, nil
}

// PostJSON sends body as application/json to rawURL and returns the
// response body of a 2xx answer.
//
// Any other status yields an [*errors.RemoteError] holding the status and
// the response text verbatim. Transport failures are reported as
// [errors.ErrCodeTimeout] or [errors.ErrCodeNetwork].
func (c *Client) PostJSON(ctx context.Context, rawURL string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, transportError(err, rawURL)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(err, rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.RemoteError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func transportError(err error, rawURL string) error {
	var ne net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &ne) && ne.Timeout()) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "POST %s timed out", redact(rawURL))
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "POST %s", redact(rawURL))
}

// redact drops user info and query from a URL before it reaches a log line.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
