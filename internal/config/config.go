package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Auth      AuthConfig
	AI        AIConfig
	Providers ProvidersConfig
	Pipeline  PipelineConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// Generation requests per minute allowed for one user.
	GenerateRatePerMinute int
	GenerateBurst         int
}

type DatabaseConfig struct {
	// "postgres" or "sqlite"
	Driver string
	DSN    string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AIConfig struct {
	// "gemini" or "openai"
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// ProvidersConfig holds the enrichment provider keys. An empty key disables that provider.
type ProvidersConfig struct {
	GoogleMapsKey        string
	GoogleMapsBaseURL    string
	VisualCrossingKey    string
	VisualCrossingURL    string
	AmadeusClientID      string
	AmadeusClientSecret  string
	AmadeusBaseURL       string
	UnsplashAccessKey    string
	UnsplashBaseURL      string
	EnableTimezoneLookup bool
	CacheTTL             time.Duration
}

// PipelineConfig holds the knobs of trip plan generation.
type PipelineConfig struct {
	CreditCostPerPlan int
	StartingCredits   int
	MaxTripDays       int
	TokenBase         int
	TokenPerDay       int
	MinTokens         int
	MaxTokens         int
	AITimeout         time.Duration
	ProviderTimeout   time.Duration
	ImageTimeout      time.Duration
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		CreditCostPerPlan: 100,
		StartingCredits:   500,
		MaxTripDays:       20,
		TokenBase:         2000,
		TokenPerDay:       1000,
		MinTokens:         4000,
		MaxTokens:         16000,
		AITimeout:         90 * time.Second,
		ProviderTimeout:   12 * time.Second,
		ImageTimeout:      8 * time.Second,
	}
}

// TokenBudget is base + perDay*days clamped to [MinTokens, MaxTokens].
func (p PipelineConfig) TokenBudget(days int) int {
	budget := p.TokenBase + p.TokenPerDay*days
	if budget < p.MinTokens {
		return p.MinTokens
	}
	if budget > p.MaxTokens {
		return p.MaxTokens
	}
	return budget
}

// LoadConfig reads .env (if present) then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	defaults := DefaultPipelineConfig()
	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:                  getEnv("PORT", "8080"),
			AllowedOrigins:        splitList(getEnv("ALLOWED_ORIGINS", "*")),
			GenerateRatePerMinute: getEnvInt("GENERATE_RATE_PER_MINUTE", 6),
			GenerateBurst:         getEnvInt("GENERATE_BURST", 2),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "postgres"),
			DSN:    getEnv("POSTGRES_URL", getEnv("DATABASE_DSN", "")),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGODB_DATABASE", "tripwise"),
			Collection: getEnv("MONGODB_TRIP_PLANS_COLLECTION", "trip_plans"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("JWT_TTL", time.Hour),
		},
		AI: AIConfig{
			Provider: getEnv("AI_PROVIDER", "gemini"),
			APIKey:   getEnv("AI_API_KEY", firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("OPENAI_API_KEY"))),
			Model:    getEnv("AI_MODEL", ""),
			BaseURL:  getEnv("AI_BASE_URL", ""),
		},
		Providers: ProvidersConfig{
			GoogleMapsKey:        getEnv("GOOGLE_MAPS_API_KEY", ""),
			GoogleMapsBaseURL:    getEnv("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com"),
			VisualCrossingKey:    getEnv("VISUAL_CROSSING_API_KEY", ""),
			VisualCrossingURL:    getEnv("VISUAL_CROSSING_BASE_URL", "https://weather.visualcrossing.com"),
			AmadeusClientID:      getEnv("AMADEUS_CLIENT_ID", ""),
			AmadeusClientSecret:  getEnv("AMADEUS_CLIENT_SECRET", ""),
			AmadeusBaseURL:       getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
			UnsplashAccessKey:    getEnv("UNSPLASH_ACCESS_KEY", ""),
			UnsplashBaseURL:      getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
			EnableTimezoneLookup: getEnvBool("ENABLE_TIMEZONE_LOOKUP", true),
			CacheTTL:             getEnvDuration("PROVIDER_CACHE_TTL", 6*time.Hour),
		},
		Pipeline: PipelineConfig{
			CreditCostPerPlan: getEnvInt("CREDIT_COST_PER_PLAN", defaults.CreditCostPerPlan),
			StartingCredits:   getEnvInt("STARTING_CREDITS", defaults.StartingCredits),
			MaxTripDays:       getEnvInt("MAX_TRIP_DAYS", defaults.MaxTripDays),
			TokenBase:         defaults.TokenBase,
			TokenPerDay:       defaults.TokenPerDay,
			MinTokens:         defaults.MinTokens,
			MaxTokens:         defaults.MaxTokens,
			AITimeout:         getEnvDuration("AI_TIMEOUT", defaults.AITimeout),
			ProviderTimeout:   getEnvDuration("PROVIDER_TIMEOUT", defaults.ProviderTimeout),
			ImageTimeout:      getEnvDuration("IMAGE_TIMEOUT", defaults.ImageTimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("POSTGRES_URL is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			c.Database.DSN = "tripwise.db"
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Pipeline.CreditCostPerPlan <= 0 {
		return fmt.Errorf("credit cost per plan must be positive")
	}
	if c.Pipeline.MaxTripDays <= 0 {
		return fmt.Errorf("max trip days must be positive")
	}
	if c.Pipeline.StartingCredits < 0 {
		return fmt.Errorf("starting credits cannot be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
