package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maskforge/maskforge/pkg/observability"
)

const fetchTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the remote resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Fetcher is a small GET client with caching and retry, used to pull
// remote PDK tables and shared designs. The zero value is not usable;
// construct with [NewFetcher].
type Fetcher struct {
	http    *http.Client
	cache   *Cache
	headers map[string]string
}

// NewFetcher creates a Fetcher with the given cache and default headers.
// Headers are applied to all requests. Pass nil for either if unused; a
// nil cache disables caching.
func NewFetcher(cache *Cache, headers map[string]string) *Fetcher {
	return &Fetcher{
		http:    &http.Client{Timeout: fetchTimeout},
		cache:   cache,
		headers: headers,
	}
}

// Cached retrieves a value from cache or executes fetch and caches the
// result. If refresh is true, the cache is bypassed and fetch always runs.
// The fetch function should populate v; on success, v is stored.
func (f *Fetcher) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if f.cache != nil && !refresh {
		if ok, _ := f.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if f.cache != nil {
		_ = f.cache.Set(key, v)
	}
	return nil
}

// GetJSON performs an HTTP GET and JSON-decodes the response into v.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) error {
	body, err := f.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// GetText performs an HTTP GET and returns the response body as a string.
// Used for non-JSON payloads such as TOML PDK tables.
func (f *Fetcher) GetText(ctx context.Context, url string) (string, error) {
	body, err := f.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	return string(data), err
}

func (f *Fetcher) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
