package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripwise/internal/models/response_models"
)

type WeatherClientInterface interface {
	// Forecast returns daily weather for start..end inclusive. location is a place name or "lat,lng".
	Forecast(ctx context.Context, location, start, end string) (*response_models.WeatherData, error)
}

// VisualCrossingClient calls the Visual Crossing timeline API.
type VisualCrossingClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewVisualCrossingClient(apiKey, baseURL string, timeout time.Duration) *VisualCrossingClient {
	return &VisualCrossingClient{
		HTTP:    newProviderHTTPClient(timeout),
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type visualCrossingResponse struct {
	ResolvedAddress string `json:"resolvedAddress"`
	Timezone        string `json:"timezone"`
	Days            []struct {
		Datetime   string  `json:"datetime"`
		TempMax    float64 `json:"tempmax"`
		TempMin    float64 `json:"tempmin"`
		Temp       float64 `json:"temp"`
		PrecipProb float64 `json:"precipprob"`
		Conditions string  `json:"conditions"`
		Icon       string  `json:"icon"`
	} `json:"days"`
}

func (c *VisualCrossingClient) Forecast(ctx context.Context, location, start, end string) (*response_models.WeatherData, error) {
	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("include", "days")
	q.Set("contentType", "json")
	q.Set("key", c.APIKey)

	endpoint := fmt.Sprintf("%s/VisualCrossingWebServices/rest/services/timeline/%s/%s/%s?%s",
		c.BaseURL, url.PathEscape(location), start, end, q.Encode())

	var payload visualCrossingResponse
	if err := getJSON(ctx, c.HTTP, "weather", endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if len(payload.Days) == 0 {
		return nil, errNoResults
	}

	data := &response_models.WeatherData{
		ResolvedAddress: payload.ResolvedAddress,
		Timezone:        payload.Timezone,
		Days:            make([]response_models.WeatherDay, 0, len(payload.Days)),
	}
	for _, d := range payload.Days {
		data.Days = append(data.Days, response_models.WeatherDay{
			Date:                     d.Datetime,
			TempMax:                  d.TempMax,
			TempMin:                  d.TempMin,
			Temp:                     d.Temp,
			PrecipitationProbability: d.PrecipProb,
			Conditions:               d.Conditions,
			Icon:                     d.Icon,
		})
	}
	return data, nil
}
