package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	credits     CreditServiceInterface
	tokenTTL    time.Duration
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, credits CreditServiceInterface, auth config.AuthConfig, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		credits:     credits,
		tokenTTL:    auth.TokenTTL,
		logger:      logger.Named("accounts"),
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("login lookup failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role, a.tokenTTL)
	if err != nil {
		a.logger.Error("token signing failed", zap.Error(err))
		return nil, utils.ErrInvalidCredentials
	}

	a.logger.Debug("login completed", zap.String("account_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))
	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokenTTL.Seconds()),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         "user",
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		a.logger.Error("account insert failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	// Opens the credit account with the starting grant; failure is retried lazily on first balance check.
	a.credits.GetBalance(ctx, newAccount.ID.String())

	return toAccountResponse(newAccount), nil
}

func (a *AccountService) GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
