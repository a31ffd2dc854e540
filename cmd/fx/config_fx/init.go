package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	config.LoadConfig,
	config.NewLogger,
	providePipelineConfig,
	provideAuthConfig,
	provideServerConfig,
	provideProvidersConfig,
)

func providePipelineConfig(cfg *config.Config) config.PipelineConfig {
	return cfg.Pipeline
}

func provideAuthConfig(cfg *config.Config, logger *zap.Logger) config.AuthConfig {
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set; tokens are signed with an empty key")
	}
	utils.SetJWTSecret(cfg.Auth.JWTSecret)
	return cfg.Auth
}

func provideServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}

func provideProvidersConfig(cfg *config.Config) config.ProvidersConfig {
	return cfg.Providers
}
