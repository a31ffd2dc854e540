package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"tripwise/internal/models/response_models"
)

const maxHotelOfferIDs = 20

type HotelPriceQuery struct {
	Lat      float64
	Lng      float64
	CheckIn  string
	CheckOut string
	Adults   int
}

type HotelPriceClientInterface interface {
	HotelPrices(ctx context.Context, q HotelPriceQuery) ([]response_models.HotelPrice, error)
}

// AmadeusHotelClient looks up hotels around a coordinate and their best offer.
// The OAuth token is shared between calls and refreshed shortly before it expires.
type AmadeusHotelClient struct {
	HTTP         *http.Client
	ClientID     string
	ClientSecret string
	BaseURL      string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusHotelClient(clientID, clientSecret, baseURL string, timeout time.Duration) *AmadeusHotelClient {
	return &AmadeusHotelClient{
		HTTP:         newProviderHTTPClient(timeout),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (c *AmadeusHotelClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ProviderStatusError{Provider: "amadeus-token", Status: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("amadeus token decode: %w", err)
	}
	if result.AccessToken == "" {
		return "", errors.New("amadeus token response had no access_token")
	}

	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	return c.accessToken, nil
}

type amadeusHotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID string `json:"hotelId"`
			Name    string `json:"name"`
			Rating  string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *AmadeusHotelClient) HotelPrices(ctx context.Context, q HotelPriceQuery) ([]response_models.HotelPrice, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	auth := http.Header{"Authorization": []string{"Bearer " + tok}}

	list := url.Values{}
	list.Set("latitude", strconv.FormatFloat(q.Lat, 'f', 6, 64))
	list.Set("longitude", strconv.FormatFloat(q.Lng, 'f', 6, 64))
	list.Set("radius", "10")
	list.Set("radiusUnit", "KM")

	var hotels amadeusHotelListResponse
	if err := getJSON(ctx, c.HTTP, "amadeus-hotels", c.BaseURL+"/v1/reference-data/locations/hotels/by-geocode?"+list.Encode(), auth, &hotels); err != nil {
		return nil, err
	}
	if len(hotels.Data) == 0 {
		return nil, errNoResults
	}

	ids := make([]string, 0, maxHotelOfferIDs)
	for _, h := range hotels.Data {
		if len(ids) == maxHotelOfferIDs {
			break
		}
		ids = append(ids, h.HotelID)
	}

	adults := q.Adults
	if adults < 1 {
		adults = 1
	}
	offers := url.Values{}
	offers.Set("hotelIds", strings.Join(ids, ","))
	offers.Set("checkInDate", q.CheckIn)
	offers.Set("checkOutDate", q.CheckOut)
	offers.Set("adults", strconv.Itoa(adults))
	offers.Set("roomQuantity", "1")
	offers.Set("bestRateOnly", "true")

	var payload amadeusHotelOffersResponse
	if err := getJSON(ctx, c.HTTP, "amadeus-offers", c.BaseURL+"/v3/shopping/hotel-offers?"+offers.Encode(), auth, &payload); err != nil {
		return nil, err
	}

	prices := make([]response_models.HotelPrice, 0, len(payload.Data))
	for _, item := range payload.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}
		total, err := strconv.ParseFloat(item.Offers[0].Price.Total, 64)
		if err != nil || total <= 0 {
			continue
		}
		price := response_models.HotelPrice{
			HotelID:  item.Hotel.HotelID,
			Name:     item.Hotel.Name,
			Price:    total,
			Currency: item.Offers[0].Price.Currency,
		}
		if stars, err := strconv.Atoi(item.Hotel.Rating); err == nil && stars > 0 {
			price.Stars = &stars
		}
		prices = append(prices, price)
	}
	return prices, nil
}
