package ai_fx

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(ProvidePlanGenerationClient)

// ProvidePlanGenerationClient returns a nil client when no API key is configured.
// The service still starts; every generation then fails and is refunded.
func ProvidePlanGenerationClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.PlanGenerationClient, error) {
	client, err := utils.NewPlanGenerationClient(cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	if errors.Is(err, utils.ErrProviderDisabled) {
		logger.Warn("AI provider disabled, trip plan generation will fail", zap.String("provider", cfg.AI.Provider))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Info("AI provider ready", zap.String("provider", cfg.AI.Provider), zap.String("model", cfg.AI.Model))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
