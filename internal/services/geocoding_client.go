package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripwise/internal/models/response_models"
	mem "tripwise/pkg/memcache"
)

type GeocoderInterface interface {
	Geocode(ctx context.Context, address string) (*response_models.Coordinates, error)
}

type GoogleGeocoder struct {
	HTTP     *http.Client
	APIKey   string
	BaseURL  string
	Cache    mem.ProviderCache
	CacheTTL time.Duration
}

func NewGoogleGeocoder(apiKey, baseURL string, timeout time.Duration, cache mem.ProviderCache, ttl time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{
		HTTP:     newProviderHTTPClient(timeout),
		APIKey:   apiKey,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Cache:    cache,
		CacheTTL: ttl,
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*response_models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errNoResults
	}

	coords, err := cachedFetch(ctx, g.Cache, cacheKey("geocode", address), g.CacheTTL, func() (response_models.Coordinates, error) {
		q := url.Values{}
		q.Set("address", address)
		q.Set("key", g.APIKey)

		var payload googleGeocodeResponse
		if err := getJSON(ctx, g.HTTP, "geocoding", g.BaseURL+"/maps/api/geocode/json?"+q.Encode(), nil, &payload); err != nil {
			return response_models.Coordinates{}, err
		}
		switch payload.Status {
		case "OK":
		case "ZERO_RESULTS":
			return response_models.Coordinates{}, errNoResults
		default:
			return response_models.Coordinates{}, fmt.Errorf("geocoding status %s: %s", payload.Status, payload.ErrorMessage)
		}
		if len(payload.Results) == 0 {
			return response_models.Coordinates{}, errNoResults
		}
		loc := payload.Results[0].Geometry.Location
		return response_models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
	})
	if err != nil {
		return nil, err
	}
	return &coords, nil
}
