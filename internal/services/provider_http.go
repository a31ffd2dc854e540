package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	mem "tripwise/pkg/memcache"
)

// ProviderStatusError is returned when a provider answers with a non-2xx status.
type ProviderStatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderStatusError) Error() string {
	return fmt.Sprintf("%s bad status %d: %s", e.Provider, e.Status, e.Body)
}

var errNoResults = errors.New("provider returned no results")

func newProviderHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes a 2xx JSON body into dest.
func getJSON(ctx context.Context, client *http.Client, provider, rawURL string, header http.Header, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http error: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProviderStatusError{Provider: provider, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s decode: %w", provider, err)
	}
	return nil
}

// cachedFetch serves dest from cache when possible, otherwise runs fetch and stores the result.
// Cache failures never fail the call.
func cachedFetch[T any](ctx context.Context, cache mem.ProviderCache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T
	if cache != nil {
		var hit T
		if err := mem.GetJSON(ctx, cache, key, &hit); err == nil {
			return hit, nil
		}
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}
	if cache != nil {
		_ = mem.SetJSON(ctx, cache, key, value, ttl)
	}
	return value, nil
}

func cacheKey(parts ...string) string {
	return strings.ToLower(strings.Join(parts, "|"))
}
