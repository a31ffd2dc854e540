package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

type stubTripPlanService struct {
	planID   string
	err      error
	gotOwner string
	gotDest  string
	plans    []response_models.TripPlanSummary
	calendar string
	gotPage  int
	gotSize  int
}

func (s *stubTripPlanService) GenerateTripPlan(ctx context.Context, raw request_models.TripPlanRequest) (string, error) {
	if p, ok := utils.PrincipalFromContext(ctx); ok {
		s.gotOwner = p.UserID
	}
	s.gotDest = raw.Destination
	return s.planID, s.err
}

func (s *stubTripPlanService) GetTripPlan(context.Context, string) (*response_models.TripPlanResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.TripPlanResponse{ID: s.planID}, nil
}

func (s *stubTripPlanService) ListTripPlans(_ context.Context, page, pageSize int) ([]response_models.TripPlanSummary, int64, error) {
	s.gotPage, s.gotSize = page, pageSize
	return s.plans, int64(len(s.plans)), s.err
}

func (s *stubTripPlanService) ExportCalendar(context.Context, string) (string, error) {
	return s.calendar, s.err
}

func setupTripPlanRouter(svc *stubTripPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if owner := c.GetHeader("X-Test-User"); owner != "" {
			c.Set("user_id", owner)
			c.Request = c.Request.WithContext(utils.WithPrincipal(c.Request.Context(), utils.Principal{UserID: owner}))
		}
		c.Next()
	})
	ctrl := NewTripPlanController(svc)
	r.POST("/trip-plans", ctrl.GenerateTripPlan)
	r.GET("/trip-plans", ctrl.ListTripPlans)
	r.GET("/trip-plans/:planId", ctrl.GetTripPlan)
	r.GET("/trip-plans/:planId/calendar.ics", ctrl.ExportCalendar)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "owner-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestGenerateTripPlan_ReturnsPlanID(t *testing.T) {
	svc := &stubTripPlanService{planID: "665f1c2b9d3e4a0012345678"}
	r := setupTripPlanRouter(svc)

	w := perform(r, http.MethodPost, "/trip-plans", `{"destination":"Paris, FR","startDate":"2025-06-01","endDate":"2025-06-05"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data, _ := decode(t, w).Data.(map[string]any)
	if data["plan_id"] != svc.planID {
		t.Errorf("expected plan_id in data, got %v", data)
	}
	if svc.gotOwner != "owner-1" || svc.gotDest != "Paris, FR" {
		t.Errorf("service got owner %q destination %q", svc.gotOwner, svc.gotDest)
	}
}

func TestGenerateTripPlan_InsufficientCredits(t *testing.T) {
	cause := &utils.InsufficientCreditsError{Required: 100, Available: 50}
	svc := &stubTripPlanService{err: &utils.PlanError{Message: cause.Error(), Cause: cause}}
	r := setupTripPlanRouter(svc)

	w := perform(r, http.MethodPost, "/trip-plans", `{"destination":"Paris, FR"}`)

	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != cause.Error() {
		t.Errorf("expected shortfall message, got %q", msg)
	}
}

func TestGenerateTripPlan_BadJSON(t *testing.T) {
	r := setupTripPlanRouter(&stubTripPlanService{})

	w := perform(r, http.MethodPost, "/trip-plans", `{"destination":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestListTripPlans_DefaultsPaging(t *testing.T) {
	svc := &stubTripPlanService{plans: []response_models.TripPlanSummary{{ID: "a"}, {ID: "b"}}}
	r := setupTripPlanRouter(svc)

	w := perform(r, http.MethodGet, "/trip-plans", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.gotPage != 1 || svc.gotSize != 10 {
		t.Errorf("expected default page 1 size 10, got %d/%d", svc.gotPage, svc.gotSize)
	}
	data, _ := decode(t, w).Data.(map[string]any)
	if data["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", data["total"])
	}
}

func TestGetTripPlan_NotFound(t *testing.T) {
	r := setupTripPlanRouter(&stubTripPlanService{err: utils.ErrPlanNotFound})

	if w := perform(r, http.MethodGet, "/trip-plans/abc", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportCalendar_ServesICS(t *testing.T) {
	svc := &stubTripPlanService{calendar: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}
	r := setupTripPlanRouter(svc)

	w := perform(r, http.MethodGet, "/trip-plans/p1/calendar.ics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), `trip-p1.ics`) {
		t.Errorf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.String() != svc.calendar {
		t.Error("body should be the calendar document")
	}
}
