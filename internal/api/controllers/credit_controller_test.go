package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
)

type stubCredits struct {
	balances map[string]int
	reasons  []db_models.CreditReason
}

func (s *stubCredits) GetBalance(_ context.Context, ownerID string) int { return s.balances[ownerID] }

func (s *stubCredits) Deduct(context.Context, string, int) bool { return false }

func (s *stubCredits) Add(_ context.Context, ownerID string, amount int, reason db_models.CreditReason) bool {
	s.balances[ownerID] += amount
	s.reasons = append(s.reasons, reason)
	return true
}

func (s *stubCredits) History(context.Context, string, int) ([]db_models.CreditTransaction, error) {
	return []db_models.CreditTransaction{{Delta: -100, Reason: db_models.CreditReasonPlanDebit, BalanceAfter: 400}}, nil
}

func setupCreditRouter(credits *stubCredits) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Next()
	})
	ctrl := NewCreditController(credits, config.DefaultPipelineConfig())
	r.GET("/credits/balance", ctrl.Balance)
	r.GET("/credits/history", ctrl.History)
	r.POST("/credits/top-up", ctrl.TopUp)
	return r
}

func TestCreditBalance(t *testing.T) {
	r := setupCreditRouter(&stubCredits{balances: map[string]int{"owner-1": 400}})

	w := perform(r, http.MethodGet, "/credits/balance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := decode(t, w).Data.(map[string]any)
	if data["credits"] != float64(400) || data["cost_per_plan"] != float64(100) {
		t.Errorf("unexpected balance payload %v", data)
	}
}

func TestCreditHistory(t *testing.T) {
	r := setupCreditRouter(&stubCredits{balances: map[string]int{}})

	w := perform(r, http.MethodGet, "/credits/history?limit=5", "")
	rows, _ := decode(t, w).Data.([]any)
	if len(rows) != 1 {
		t.Fatalf("expected one journal row, got %v", decode(t, w).Data)
	}
	if row := rows[0].(map[string]any); row["reason"] != "plan_generation" {
		t.Errorf("unexpected row %v", row)
	}
}

func TestCreditTopUp(t *testing.T) {
	credits := &stubCredits{balances: map[string]int{}}
	r := setupCreditRouter(credits)
	const owner = "0b9c6f62-1f0e-4a8c-9e1b-4d2f3a5b6c7d"

	w := perform(r, http.MethodPost, "/credits/top-up", `{"owner_id":"`+owner+`","amount":250}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if credits.balances[owner] != 250 || len(credits.reasons) != 1 || credits.reasons[0] != db_models.CreditReasonTopUp {
		t.Errorf("expected a journaled top-up, got %v %v", credits.balances, credits.reasons)
	}

	if w := perform(r, http.MethodPost, "/credits/top-up", `{"owner_id":"`+owner+`","amount":0}`); w.Code != http.StatusBadRequest {
		t.Errorf("zero amount should be rejected, got %d", w.Code)
	}
}
