package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"tripwise/internal/models/response_models"
	mem "tripwise/pkg/memcache"
)

const placesPerCategory = 10

type PlacesClientInterface interface {
	// Search returns attractions, restaurants and hotels near the destination. coords may be nil.
	Search(ctx context.Context, destination string, coords *response_models.Coordinates) (*response_models.PlacesData, error)
}

// GooglePlacesClient uses the Places Text Search endpoint, one query per category.
type GooglePlacesClient struct {
	HTTP     *http.Client
	APIKey   string
	BaseURL  string
	Cache    mem.ProviderCache
	CacheTTL time.Duration
}

func NewGooglePlacesClient(apiKey, baseURL string, timeout time.Duration, cache mem.ProviderCache, ttl time.Duration) *GooglePlacesClient {
	return &GooglePlacesClient{
		HTTP:     newProviderHTTPClient(timeout),
		APIKey:   apiKey,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Cache:    cache,
		CacheTTL: ttl,
	}
}

type googlePlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	PriceLevel       *int     `json:"price_level"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type googleTextSearchResponse struct {
	Status       string        `json:"status"`
	Results      []googlePlace `json:"results"`
	ErrorMessage string        `json:"error_message"`
}

func (c *GooglePlacesClient) Search(ctx context.Context, destination string, coords *response_models.Coordinates) (*response_models.PlacesData, error) {
	attractions, err := c.textSearch(ctx, "top tourist attractions in "+destination, coords)
	if err != nil {
		return nil, err
	}
	restaurants, err := c.textSearch(ctx, "best restaurants in "+destination, coords)
	if err != nil {
		return nil, err
	}
	hotels, err := c.textSearch(ctx, "hotels in "+destination, coords)
	if err != nil {
		return nil, err
	}
	return &response_models.PlacesData{
		Attractions: attractions,
		Restaurants: restaurants,
		Hotels:      hotels,
	}, nil
}

func (c *GooglePlacesClient) textSearch(ctx context.Context, query string, coords *response_models.Coordinates) ([]response_models.Place, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.APIKey)
	key := cacheKey("places", query)
	if coords != nil {
		loc := fmt.Sprintf("%f,%f", coords.Lat, coords.Lng)
		q.Set("location", loc)
		q.Set("radius", "20000")
		key = cacheKey("places", query, loc)
	}

	return cachedFetch(ctx, c.Cache, key, c.CacheTTL, func() ([]response_models.Place, error) {
		var payload googleTextSearchResponse
		if err := getJSON(ctx, c.HTTP, "places", c.BaseURL+"/maps/api/place/textsearch/json?"+q.Encode(), nil, &payload); err != nil {
			return nil, err
		}
		if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
			return nil, fmt.Errorf("places status %s: %s", payload.Status, payload.ErrorMessage)
		}

		unique := lo.UniqBy(payload.Results, func(p googlePlace) string { return p.PlaceID })
		places := lo.Map(unique, func(p googlePlace, _ int) response_models.Place {
			return response_models.Place{
				PlaceID:          p.PlaceID,
				Name:             p.Name,
				Address:          p.FormattedAddress,
				Rating:           p.Rating,
				UserRatingsTotal: p.UserRatingsTotal,
				Types:            lo.Ternary(p.Types == nil, []string{}, p.Types),
				Lat:              p.Geometry.Location.Lat,
				Lng:              p.Geometry.Location.Lng,
				PriceLevel:       p.PriceLevel,
			}
		})
		if len(places) > placesPerCategory {
			places = places[:placesPerCategory]
		}
		return places, nil
	})
}
