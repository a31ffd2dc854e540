package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type CreditController struct {
	credits     services.CreditServiceInterface
	costPerPlan int
}

func NewCreditController(credits services.CreditServiceInterface, pipeline config.PipelineConfig) *CreditController {
	return &CreditController{
		credits:     credits,
		costPerPlan: pipeline.CreditCostPerPlan,
	}
}

// Balance godoc
// @Summary Credit balance
// @Description Returns the caller's credits. The account is created with the starting grant on first read.
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/balance [get]
func (cc *CreditController) Balance(c *gin.Context) {
	balance := cc.credits.GetBalance(c.Request.Context(), c.GetString("user_id"))

	utils.RespondSuccess(c, response_models.CreditBalanceResponse{
		Credits:     balance,
		CostPerPlan: cc.costPerPlan,
	}, "Balance fetched successfully")
}

// History godoc
// @Summary Credit history
// @Tags Credits
// @Produce json
// @Param limit query int false "Number of entries (max 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/history [get]
func (cc *CreditController) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := cc.credits.History(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		utils.HandleServiceError(c, &utils.DatabaseError{Message: "credit history", Cause: err})
		return
	}

	history := make([]response_models.CreditTransactionResponse, 0, len(rows))
	for _, row := range rows {
		history = append(history, response_models.CreditTransactionResponse{
			Delta:        row.Delta,
			Reason:       string(row.Reason),
			BalanceAfter: row.BalanceAfter,
			CreatedAt:    row.CreatedAt,
		})
	}
	utils.RespondSuccess(c, history, "Credit history fetched successfully")
}

// TopUp godoc
// @Summary Grant credits to an account
// @Description Admin only. Adds credits to the owner's ledger and journals a top-up.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body request_models.CreditTopUpRequest true "Top-up payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/top-up [post]
func (cc *CreditController) TopUp(c *gin.Context) {
	var req request_models.CreditTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ctx := c.Request.Context()
	if !cc.credits.Add(ctx, req.OwnerID, req.Amount, db_models.CreditReasonTopUp) {
		utils.HandleServiceError(c, &utils.DatabaseError{Message: "credit top-up failed"})
		return
	}

	utils.RespondSuccess(c, response_models.CreditBalanceResponse{
		Credits:     cc.credits.GetBalance(ctx, req.OwnerID),
		CostPerPlan: cc.costPerPlan,
	}, "Credits added successfully")
}
