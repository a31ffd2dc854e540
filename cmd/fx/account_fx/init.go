package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, credits services.CreditServiceInterface, auth config.AuthConfig, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, credits, auth, logger)
}
