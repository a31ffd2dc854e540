package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

type EnrichmentQuery struct {
	City      string
	Country   string
	StartDate time.Time
	EndDate   time.Time
	Adults    int
	Children  int
}

func (q EnrichmentQuery) place() string {
	if q.Country == "" {
		return q.City
	}
	return q.City + ", " + q.Country
}

type EnrichmentServiceInterface interface {
	// Enrich never fails; every bundle field is nil when its source failed or is not configured.
	Enrich(ctx context.Context, q EnrichmentQuery) response_models.EnrichmentBundle
}

// EnrichmentProviders leaves a field nil to skip that provider.
type EnrichmentProviders struct {
	Geocoder  GeocoderInterface
	Weather   WeatherClientInterface
	Places    PlacesClientInterface
	Hotels    HotelPriceClientInterface
	Timezones TimezoneLookupInterface
}

type EnrichmentService struct {
	providers EnrichmentProviders
	timeout   time.Duration
	logger    *zap.Logger
}

func NewEnrichmentService(providers EnrichmentProviders, providerTimeout time.Duration, logger *zap.Logger) EnrichmentServiceInterface {
	return &EnrichmentService{
		providers: providers,
		timeout:   providerTimeout,
		logger:    logger.Named("enrichment"),
	}
}

func (s *EnrichmentService) Enrich(ctx context.Context, q EnrichmentQuery) response_models.EnrichmentBundle {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.String("destination.city", q.City),
		attribute.String("destination.country", q.Country),
	))
	defer span.End()

	var bundle response_models.EnrichmentBundle

	coords := s.geocode(ctx, q)
	if coords != nil {
		bundle.DestinationLat = &coords.Lat
		bundle.DestinationLng = &coords.Lng
		if s.providers.Timezones != nil {
			if zone := s.providers.Timezones.TimezoneAt(coords.Lat, coords.Lng); zone != "" {
				bundle.DestinationTimezone = &zone
			}
		}
	}

	var (
		weather *response_models.WeatherData
		places  *response_models.PlacesData
		prices  []response_models.HotelPrice
	)

	// Tasks record their own outcome and always return nil so one failure never cancels the others.
	var g errgroup.Group
	if s.providers.Weather != nil {
		g.Go(func() error {
			weather = s.fetchWeather(ctx, q, coords)
			return nil
		})
	}
	if s.providers.Places != nil {
		g.Go(func() error {
			places = s.fetchPlaces(ctx, q, coords)
			return nil
		})
	}
	if s.providers.Hotels != nil && coords != nil {
		g.Go(func() error {
			prices = s.fetchHotelPrices(ctx, q, coords)
			return nil
		})
	}
	_ = g.Wait()

	if places != nil && len(prices) > 0 {
		places.Hotels = MergeHotelPrices(places.Hotels, prices)
	}
	bundle.WeatherData = weather
	bundle.PlacesData = places

	span.SetAttributes(
		attribute.Bool("enrichment.weather", weather != nil),
		attribute.Bool("enrichment.places", places != nil),
		attribute.Int("enrichment.hotel_prices", len(prices)),
	)
	return bundle
}

func (s *EnrichmentService) geocode(ctx context.Context, q EnrichmentQuery) *response_models.Coordinates {
	if s.providers.Geocoder == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coords, err := s.providers.Geocoder.Geocode(ctx, q.place())
	if err != nil {
		s.logger.Warn("geocoding failed", zap.String("place", q.place()), zap.Error(err))
		return nil
	}
	return coords
}

func (s *EnrichmentService) fetchWeather(ctx context.Context, q EnrichmentQuery, coords *response_models.Coordinates) *response_models.WeatherData {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	location := q.place()
	if coords != nil {
		location = formatLatLng(*coords)
	}
	data, err := s.providers.Weather.Forecast(ctx, location, utils.FormatDay(q.StartDate), utils.FormatDay(q.EndDate))
	if err != nil {
		s.logger.Warn("weather lookup failed", zap.String("location", location), zap.Error(err))
		return nil
	}
	return data
}

func (s *EnrichmentService) fetchPlaces(ctx context.Context, q EnrichmentQuery, coords *response_models.Coordinates) *response_models.PlacesData {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.providers.Places.Search(ctx, q.place(), coords)
	if err != nil {
		s.logger.Warn("places lookup failed", zap.String("place", q.place()), zap.Error(err))
		return nil
	}
	return data
}

func (s *EnrichmentService) fetchHotelPrices(ctx context.Context, q EnrichmentQuery, coords *response_models.Coordinates) []response_models.HotelPrice {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	checkOut := q.EndDate
	if !checkOut.After(q.StartDate) {
		checkOut = q.StartDate.AddDate(0, 0, 1)
	}
	prices, err := s.providers.Hotels.HotelPrices(ctx, HotelPriceQuery{
		Lat:      coords.Lat,
		Lng:      coords.Lng,
		CheckIn:  utils.FormatDay(q.StartDate),
		CheckOut: utils.FormatDay(checkOut),
		Adults:   q.Adults,
	})
	if err != nil {
		s.logger.Warn("hotel price lookup failed", zap.String("place", q.place()), zap.Error(err))
		return nil
	}
	return prices
}

// MergeHotelPrices attaches a price to every hotel whose name contains, or is contained in,
// a priced hotel's name. Unmatched hotels are returned unchanged.
func MergeHotelPrices(hotels []response_models.Place, prices []response_models.HotelPrice) []response_models.Place {
	merged := make([]response_models.Place, len(hotels))
	copy(merged, hotels)

	for i := range merged {
		name := strings.ToLower(strings.TrimSpace(merged[i].Name))
		if name == "" {
			continue
		}
		for _, p := range prices {
			priced := strings.ToLower(strings.TrimSpace(p.Name))
			if priced == "" || !(strings.Contains(priced, name) || strings.Contains(name, priced)) {
				continue
			}
			price := p.Price
			merged[i].Price = &price
			merged[i].PriceCurrency = p.Currency
			switch {
			case p.Stars != nil:
				stars := *p.Stars
				merged[i].Stars = &stars
			case p.Rating != nil:
				stars := int(math.Round(*p.Rating))
				merged[i].Stars = &stars
			case merged[i].Rating != nil:
				stars := int(math.Round(*merged[i].Rating))
				merged[i].Stars = &stars
			}
			break
		}
	}
	return merged
}

func formatLatLng(c response_models.Coordinates) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}
