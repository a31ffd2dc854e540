package credit_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
)

var Module = fx.Provide(
	provideCreditRepo, provideCreditService)

func provideCreditRepo(db *gorm.DB) repositories.CreditRepository {
	return repositories.NewCreditRepository(db)
}

func provideCreditService(repo repositories.CreditRepository, pipeline config.PipelineConfig, logger *zap.Logger) services.CreditServiceInterface {
	return services.NewCreditService(repo, pipeline, logger)
}
