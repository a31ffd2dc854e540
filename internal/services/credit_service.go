package services

import (
	"context"

	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/repositories"
)

// CreditServiceInterface never returns storage errors: failures read as a zero
// balance or a rejected mutation, which callers treat as insufficient credits.
type CreditServiceInterface interface {
	GetBalance(ctx context.Context, ownerID string) int
	Deduct(ctx context.Context, ownerID string, amount int) bool
	Add(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) bool
	History(ctx context.Context, ownerID string, limit int) ([]db_models.CreditTransaction, error)
}

type CreditService struct {
	repo            repositories.CreditRepository
	startingCredits int
	logger          *zap.Logger
}

func NewCreditService(repo repositories.CreditRepository, pipeline config.PipelineConfig, logger *zap.Logger) CreditServiceInterface {
	return &CreditService{
		repo:            repo,
		startingCredits: pipeline.StartingCredits,
		logger:          logger.Named("credits"),
	}
}

func (s *CreditService) GetBalance(ctx context.Context, ownerID string) int {
	if ownerID == "" {
		return 0
	}
	account, err := s.repo.GetOrCreate(ctx, ownerID, s.startingCredits)
	if err != nil {
		s.logger.Error("get balance failed", zap.String("owner", ownerID), zap.Error(err))
		return 0
	}
	return account.Credits
}

func (s *CreditService) Deduct(ctx context.Context, ownerID string, amount int) bool {
	if ownerID == "" || amount <= 0 {
		return false
	}
	ok, err := s.repo.Deduct(ctx, ownerID, amount, db_models.CreditReasonPlanDebit)
	if err != nil {
		s.logger.Error("deduct failed", zap.String("owner", ownerID), zap.Int("amount", amount), zap.Error(err))
		return false
	}
	return ok
}

func (s *CreditService) Add(ctx context.Context, ownerID string, amount int, reason db_models.CreditReason) bool {
	if ownerID == "" || amount <= 0 {
		return false
	}
	if _, err := s.repo.GetOrCreate(ctx, ownerID, s.startingCredits); err != nil {
		s.logger.Error("add failed to resolve account", zap.String("owner", ownerID), zap.Error(err))
		return false
	}
	ok, err := s.repo.Add(ctx, ownerID, amount, reason)
	if err != nil {
		s.logger.Error("add failed", zap.String("owner", ownerID), zap.Int("amount", amount), zap.Error(err))
		return false
	}
	return ok
}

func (s *CreditService) History(ctx context.Context, ownerID string, limit int) ([]db_models.CreditTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListTransactions(ctx, ownerID, limit)
}
