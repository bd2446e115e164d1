// Package httputil provides the HTTP plumbing used to fetch remote
// resources such as hosted PDK tables and shared design records.
//
// # Overview
//
//   - [Cache]: file-based response caching with TTL
//   - [Retry]: automatic retry with exponential backoff
//   - [Fetcher]: a small GET client combining both
//
// # Caching
//
// [Cache] stores fetched payloads in the filesystem (~/.cache/maskforge/)
// with a configurable TTL, so repeated builds against the same remote PDK
// do not refetch it.
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var text string
//	if ok, _ := cache.Get("pdk:"+url, &text); !ok {
//	    // fetch, then cache.Set("pdk:"+url, text)
//	}
//
// Cache keys should be namespaced by resource kind to avoid collisions.
//
// # Retry
//
// [Retry] retries transient failures with exponential backoff. Wrap network
// errors and 5xx responses in [RetryableError] so Retry can tell them apart
// from permanent failures, which are returned immediately.
//
// The cache can be cleared via `maskforge cache clear` or by deleting the
// cache directory.
package httputil
