package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type TripPlanController struct {
	tripPlanService services.TripPlanServiceInterface
}

func NewTripPlanController(tripPlanService services.TripPlanServiceInterface) *TripPlanController {
	return &TripPlanController{
		tripPlanService: tripPlanService,
	}
}

// GenerateTripPlan godoc
// @Summary Generate a trip plan
// @Description Charges credits, asks the AI for an itinerary, enriches it and stores it. Credits are refunded on failure.
// @Tags TripPlans
// @Accept json
// @Produce json
// @Param request body request_models.TripPlanRequest true "Trip form"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trip-plans [post]
func (t *TripPlanController) GenerateTripPlan(c *gin.Context) {
	var req request_models.TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	planID, err := t.tripPlanService.GenerateTripPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"plan_id": planID}, "Trip plan generated successfully")
}

// ListTripPlans godoc
// @Summary List my trip plans
// @Tags TripPlans
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trip-plans [get]
func (t *TripPlanController) ListTripPlans(c *gin.Context) {
	var query request_models.ListTripPlansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	plans, total, err := t.tripPlanService.ListTripPlans(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"items":     plans,
		"total":     total,
		"page":      query.Page,
		"page_size": query.PageSize,
	}, "Trip plans fetched successfully")
}

// GetTripPlan godoc
// @Summary Get a trip plan
// @Tags TripPlans
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trip-plans/{planId} [get]
func (t *TripPlanController) GetTripPlan(c *gin.Context) {
	plan, err := t.tripPlanService.GetTripPlan(c.Request.Context(), c.Param("planId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Trip plan fetched successfully")
}

// ExportCalendar godoc
// @Summary Export the itinerary as iCalendar
// @Tags TripPlans
// @Produce text/calendar
// @Param planId path string true "Plan ID"
// @Success 200 {string} string "VCALENDAR document"
// @Security BearerAuth
// @Router /trip-plans/{planId}/calendar.ics [get]
func (t *TripPlanController) ExportCalendar(c *gin.Context) {
	planID := c.Param("planId")
	ics, err := t.tripPlanService.ExportCalendar(c.Request.Context(), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.ics"`, planID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
