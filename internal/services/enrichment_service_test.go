package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"tripwise/internal/models/response_models"
)

type fakeGeocoder struct {
	coords *response_models.Coordinates
	err    error
}

func (f fakeGeocoder) Geocode(context.Context, string) (*response_models.Coordinates, error) {
	return f.coords, f.err
}

type fakeWeather struct {
	err      error
	location atomic.Value
}

func (f *fakeWeather) Forecast(_ context.Context, location, start, end string) (*response_models.WeatherData, error) {
	f.location.Store(location)
	if f.err != nil {
		return nil, f.err
	}
	return &response_models.WeatherData{Days: []response_models.WeatherDay{{Date: start}, {Date: end}}}, nil
}

type fakePlaces struct {
	err error
}

func (f fakePlaces) Search(context.Context, string, *response_models.Coordinates) (*response_models.PlacesData, error) {
	if f.err != nil {
		return nil, f.err
	}
	rating := 4.4
	return &response_models.PlacesData{
		Attractions: []response_models.Place{{Name: "Louvre Museum"}},
		Restaurants: []response_models.Place{{Name: "Le Comptoir"}},
		Hotels: []response_models.Place{
			{Name: "Hotel Le Marais", Rating: &rating},
			{Name: "Unpriced Inn"},
		},
	}, nil
}

type fakeHotels struct {
	err    error
	called atomic.Bool
}

func (f *fakeHotels) HotelPrices(context.Context, HotelPriceQuery) ([]response_models.HotelPrice, error) {
	f.called.Store(true)
	if f.err != nil {
		return nil, f.err
	}
	return []response_models.HotelPrice{{HotelID: "PAR1", Name: "HOTEL LE MARAIS PARIS", Price: 180, Currency: "EUR"}}, nil
}

type fakeTimezones struct{}

func (fakeTimezones) TimezoneAt(float64, float64) string { return "Europe/Paris" }

func parisQuery() EnrichmentQuery {
	return EnrichmentQuery{
		City:      "Paris",
		Country:   "FR",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Adults:    2,
	}
}

func TestEnrich_WeatherFailureKeepsOtherSources(t *testing.T) {
	svc := NewEnrichmentService(EnrichmentProviders{
		Geocoder:  fakeGeocoder{coords: &response_models.Coordinates{Lat: 48.8566, Lng: 2.3522}},
		Weather:   &fakeWeather{err: errors.New("503 from weather")},
		Places:    fakePlaces{},
		Hotels:    &fakeHotels{},
		Timezones: fakeTimezones{},
	}, time.Second, zap.NewNop())

	bundle := svc.Enrich(context.Background(), parisQuery())

	if bundle.WeatherData != nil {
		t.Error("expected nil weather data when the weather provider fails")
	}
	if bundle.PlacesData == nil || len(bundle.PlacesData.Attractions) != 1 {
		t.Fatalf("expected places data, got %+v", bundle.PlacesData)
	}
	if bundle.DestinationLat == nil || *bundle.DestinationLat != 48.8566 || bundle.DestinationLng == nil {
		t.Error("expected destination coordinates")
	}
	if bundle.DestinationTimezone == nil || *bundle.DestinationTimezone != "Europe/Paris" {
		t.Error("expected destination timezone")
	}

	hotel := bundle.PlacesData.Hotels[0]
	if hotel.Price == nil || *hotel.Price != 180 || hotel.PriceCurrency != "EUR" {
		t.Errorf("expected merged price on matching hotel, got %+v", hotel)
	}
	if hotel.Stars == nil || *hotel.Stars != 4 {
		t.Errorf("expected stars to fall back to rounded rating, got %v", hotel.Stars)
	}
	if bundle.PlacesData.Hotels[1].Price != nil {
		t.Error("unmatched hotel must stay unpriced")
	}
}

func TestEnrich_AllProvidersFail(t *testing.T) {
	boom := errors.New("boom")
	svc := NewEnrichmentService(EnrichmentProviders{
		Geocoder: fakeGeocoder{err: boom},
		Weather:  &fakeWeather{err: boom},
		Places:   fakePlaces{err: boom},
		Hotels:   &fakeHotels{err: boom},
	}, time.Second, zap.NewNop())

	bundle := svc.Enrich(context.Background(), parisQuery())
	if bundle.WeatherData != nil || bundle.PlacesData != nil || bundle.DestinationLat != nil ||
		bundle.DestinationLng != nil || bundle.DestinationTimezone != nil {
		t.Errorf("expected an all-nil bundle, got %+v", bundle)
	}
}

func TestEnrich_GeocodeFailureSkipsOnlyHotelPrices(t *testing.T) {
	weather := &fakeWeather{}
	hotels := &fakeHotels{}
	svc := NewEnrichmentService(EnrichmentProviders{
		Geocoder: fakeGeocoder{err: errors.New("quota exceeded")},
		Weather:  weather,
		Places:   fakePlaces{},
		Hotels:   hotels,
	}, time.Second, zap.NewNop())

	bundle := svc.Enrich(context.Background(), parisQuery())

	if hotels.called.Load() {
		t.Error("hotel prices must not be requested without coordinates")
	}
	if bundle.WeatherData == nil {
		t.Error("weather should still be fetched by place name")
	}
	if bundle.PlacesData == nil || len(bundle.PlacesData.Hotels) != 2 {
		t.Fatalf("places should still be fetched, got %+v", bundle.PlacesData)
	}
	if bundle.PlacesData.Hotels[0].Price != nil {
		t.Error("hotels must stay unpriced when hotel prices were skipped")
	}
	if bundle.DestinationLat != nil {
		t.Error("expected no coordinates after a geocoding failure")
	}
}

func TestEnrich_SkipsUnconfiguredProviders(t *testing.T) {
	weather := &fakeWeather{}
	hotels := &fakeHotels{}
	svc := NewEnrichmentService(EnrichmentProviders{Weather: weather, Hotels: hotels}, time.Second, zap.NewNop())

	bundle := svc.Enrich(context.Background(), parisQuery())
	if bundle.WeatherData == nil || len(bundle.WeatherData.Days) != 2 {
		t.Fatalf("expected weather data, got %+v", bundle.WeatherData)
	}
	if got := weather.location.Load(); got != "Paris, FR" {
		t.Errorf("weather without coordinates should query by place name, got %v", got)
	}
	if hotels.called.Load() {
		t.Error("hotel prices need coordinates and must be skipped without a geocoder")
	}
	if bundle.PlacesData != nil {
		t.Error("places must stay nil when not configured")
	}
}

func TestMergeHotelPrices(t *testing.T) {
	three := 3
	hotels := []response_models.Place{{Name: "Ritz"}, {Name: "Generator Paris Hostel"}, {Name: ""}}
	prices := []response_models.HotelPrice{
		{Name: "The Ritz Paris", Price: 1200, Currency: "EUR", Stars: &three},
		{Name: "generator paris", Price: 60, Currency: "EUR"},
	}

	merged := MergeHotelPrices(hotels, prices)

	if merged[0].Price == nil || *merged[0].Price != 1200 || merged[0].Stars == nil || *merged[0].Stars != 3 {
		t.Errorf("hotel name contained in priced name should match, got %+v", merged[0])
	}
	if merged[1].Price == nil || *merged[1].Price != 60 {
		t.Errorf("priced name contained in hotel name should match, got %+v", merged[1])
	}
	if merged[1].Stars != nil {
		t.Error("no star source means no stars")
	}
	if merged[2].Price != nil {
		t.Error("empty names never match")
	}
	if hotels[0].Price != nil {
		t.Error("input slice must not be mutated")
	}
}
