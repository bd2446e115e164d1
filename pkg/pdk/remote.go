package pdk

import (
	"context"
	"time"

	"github.com/maskforge/maskforge/pkg/buildinfo"
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/httputil"
)

// remoteTTL bounds how long a fetched PDK table is reused before refetch.
const remoteTTL = 24 * time.Hour

// LoadURL fetches and parses a PDK table from an http(s) URL. Responses
// are cached on disk with a 24h TTL and 5xx responses are retried, so a
// flaky host does not break a design run that already saw the table.
func LoadURL(ctx context.Context, url string) (*PDK, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	cache, err := httputil.NewCache("", remoteTTL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open PDK fetch cache")
	}
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	return loadURL(ctx, httputil.NewFetcher(cache.Namespace("pdk:"), headers), url)
}

// LoadURLWith is LoadURL with an explicit fetcher, for callers that manage
// their own cache directory or headers.
func LoadURLWith(ctx context.Context, fetcher *httputil.Fetcher, url string) (*PDK, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	return loadURL(ctx, fetcher, url)
}

func loadURL(ctx context.Context, fetcher *httputil.Fetcher, url string) (*PDK, error) {
	var text string
	err := fetcher.Cached(ctx, url, false, &text, func() error {
		var ferr error
		text, ferr = fetcher.GetText(ctx, url)
		return ferr
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "fetch PDK table %s", url)
	}
	return Parse([]byte(text))
}
