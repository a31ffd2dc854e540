package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/pkg/utils"
)

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account
}

func (r *memAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.accounts == nil {
		r.accounts = map[string]*db_models.Account{}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID.String()] = account
	return nil
}

func (r *memAccountRepo) FindById(_ context.Context, id string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id], nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func newTestAccountService(ledger *memCreditRepo) AccountServiceInterface {
	credits := NewCreditService(ledger, config.DefaultPipelineConfig(), zap.NewNop())
	return NewAccountService(&memAccountRepo{}, credits, config.AuthConfig{JWTSecret: "test", TokenTTL: time.Hour}, zap.NewNop())
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	ledger := newMemCreditRepo()
	svc := newTestAccountService(ledger)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Asha", Email: " Asha@Example.com ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if created.Email != "asha@example.com" || created.Role != "user" {
		t.Errorf("unexpected account %+v", created)
	}
	if got := ledger.balance(created.ID); got != 500 {
		t.Errorf("new account should get the starting grant, got %d", got)
	}

	if _, err := svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Dup", Email: "asha@example.com", Password: "hunter22"}); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "ASHA@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.ExpiresIn != 3600 {
		t.Errorf("expected 3600s expiry, got %d", login.ExpiresIn)
	}
	claims, err := utils.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != created.ID {
		t.Errorf("token subject %s, want %s", claims.UserID, created.ID)
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"}); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
