package enrichment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/services"
	mem "tripwise/pkg/memcache"
)

var Module = fx.Provide(
	provideEnrichmentProviders, provideEnrichmentService, provideImageService)

// Providers without credentials are left nil and skipped at request time.
func provideEnrichmentProviders(cfg config.ProvidersConfig, pipeline config.PipelineConfig, cache mem.ProviderCache, logger *zap.Logger) services.EnrichmentProviders {
	var providers services.EnrichmentProviders
	timeout := pipeline.ProviderTimeout

	if cfg.GoogleMapsKey != "" {
		providers.Geocoder = services.NewGoogleGeocoder(cfg.GoogleMapsKey, cfg.GoogleMapsBaseURL, timeout, cache, cfg.CacheTTL)
		providers.Places = services.NewGooglePlacesClient(cfg.GoogleMapsKey, cfg.GoogleMapsBaseURL, timeout, cache, cfg.CacheTTL)
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, geocoding and places disabled")
	}

	if cfg.VisualCrossingKey != "" {
		providers.Weather = services.NewVisualCrossingClient(cfg.VisualCrossingKey, cfg.VisualCrossingURL, timeout)
	} else {
		logger.Warn("VISUAL_CROSSING_API_KEY not set, weather disabled")
	}

	if cfg.AmadeusClientID != "" && cfg.AmadeusClientSecret != "" {
		providers.Hotels = services.NewAmadeusHotelClient(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusBaseURL, timeout)
	} else {
		logger.Warn("Amadeus credentials not set, hotel prices disabled")
	}

	if cfg.EnableTimezoneLookup {
		lookup, err := services.NewTimezoneLookup()
		if err != nil {
			logger.Warn("timezone lookup unavailable", zap.Error(err))
		} else {
			providers.Timezones = lookup
		}
	}

	return providers
}

func provideEnrichmentService(providers services.EnrichmentProviders, pipeline config.PipelineConfig, logger *zap.Logger) services.EnrichmentServiceInterface {
	return services.NewEnrichmentService(providers, pipeline.ProviderTimeout, logger)
}

func provideImageService(cfg config.ProvidersConfig, pipeline config.PipelineConfig, logger *zap.Logger) services.ImageServiceInterface {
	if cfg.UnsplashAccessKey == "" {
		logger.Warn("UNSPLASH_ACCESS_KEY not set, destination images disabled")
		return nil
	}
	return services.NewUnsplashImageService(cfg.UnsplashAccessKey, cfg.UnsplashBaseURL, pipeline.ImageTimeout, logger)
}
