package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var (
		planErr    *PlanError
		creditErr  *InsufficientCreditsError
		validErr   *ValidationError
		aiErr      *AIServiceError
		storageErr *DatabaseError
	)

	// Pipeline errors already carry a user-facing message; the cause only picks the status.
	if errors.As(err, &planErr) {
		RespondError(c, statusForCause(planErr.Cause), planErr.Message)
		return
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, "Authentication required")
	case errors.As(err, &creditErr):
		RespondError(c, http.StatusPaymentRequired, creditErr.Error())
	case errors.As(err, &validErr):
		RespondError(c, http.StatusBadRequest, validErr.Message)
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Trip plan not found")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 50")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.As(err, &aiErr):
		zap.L().Error("ai service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusBadGateway, "AI service unavailable")
	case errors.As(err, &storageErr), errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func statusForCause(cause error) int {
	var (
		creditErr *InsufficientCreditsError
		validErr  *ValidationError
	)
	switch {
	case cause == nil:
		return http.StatusInternalServerError
	case errors.Is(cause, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(cause, &creditErr):
		return http.StatusPaymentRequired
	case errors.As(cause, &validErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
