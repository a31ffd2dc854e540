package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

const maxPageSize = 50

type SavePlanInput struct {
	OwnerID          string
	Request          *TripRequest
	Dates            *NormalizedDates
	Destination      DestinationInfo
	Plan             *response_models.AIPlanData
	Enrichment       response_models.EnrichmentBundle
	DestinationImage *string
}

type TripPlanStoreInterface interface {
	// Save writes one plan document and returns its id.
	Save(ctx context.Context, in SavePlanInput) (string, error)
	Get(ctx context.Context, ownerID, planID string) (*response_models.TripPlanResponse, error)
	List(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.TripPlanSummary, int64, error)
}

type TripPlanStore struct {
	repo   repositories.TripPlanRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTripPlanStore(repo repositories.TripPlanRepository, logger *zap.Logger) TripPlanStoreInterface {
	return &TripPlanStore{repo: repo, logger: logger.Named("plan_store"), now: time.Now}
}

func (s *TripPlanStore) Save(ctx context.Context, in SavePlanInput) (string, error) {
	itinerary, err := json.Marshal(in.Plan)
	if err != nil {
		return "", &utils.DatabaseError{Message: "serialize itinerary", Cause: err}
	}

	req := in.Request
	doc := &db_models.TripPlan{
		OwnerID:            in.OwnerID,
		StartingLocation:   req.StartingLocation,
		Destination:        in.Destination.City,
		DestinationCountry: in.Destination.Country,
		StartDate:          in.Dates.Start,
		EndDate:            in.Dates.End,
		Duration:           in.Dates.Days,
		Currency:           req.Currency,
		Budget:             req.Budget,
		BudgetBreakdown:    BuildBudgetBreakdown(req.Currency, req.Budget, in.Dates.Days, req.Travelers()),
		Travelers: db_models.Travelers{
			Adults:   req.Adults,
			Children: req.Children,
			Infants:  req.Infants,
		},
		Preferences: db_models.TripPreferences{
			Themes:                req.Themes,
			TravelPace:            req.TravelPace,
			WeatherPreferences:    req.WeatherPreferences,
			Accommodation:         req.Accommodation,
			Food:                  req.Food,
			Transport:             req.Transport,
			AdditionalPreferences: req.AdditionalPreferences,
		},
		Title:            in.Plan.TripHighlights.Title,
		Itinerary:        string(itinerary),
		Enrichment:       in.Enrichment,
		DestinationImage: in.DestinationImage,
		CreatedAt:        s.now().UTC(),
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(id) == "" {
		return "", &utils.DatabaseError{Message: "plan saved without an id"}
	}
	return id, nil
}

func (s *TripPlanStore) Get(ctx context.Context, ownerID, planID string) (*response_models.TripPlanResponse, error) {
	doc, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, utils.ErrPlanNotFound
	}
	if doc.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}

	var plan response_models.AIPlanData
	if err := json.Unmarshal([]byte(doc.Itinerary), &plan); err != nil {
		// Stored plans were repaired before saving; a decode failure means the document was altered.
		s.logger.Error("stored itinerary is not valid JSON", zap.String("plan_id", planID), zap.Error(err))
		return nil, &utils.DatabaseError{Message: "decode stored itinerary", Cause: err}
	}

	return &response_models.TripPlanResponse{
		ID:                  doc.ID.Hex(),
		StartingLocation:    doc.StartingLocation,
		Destination:         doc.Destination,
		DestinationCountry:  doc.DestinationCountry,
		StartDate:           utils.FormatDay(doc.StartDate),
		EndDate:             utils.FormatDay(doc.EndDate),
		Duration:            doc.Duration,
		Currency:            doc.Currency,
		Budget:              doc.Budget,
		BudgetBreakdown:     doc.BudgetBreakdown,
		Plan:                plan,
		Enrichment:          doc.Enrichment,
		DestinationImage:    doc.DestinationImage,
		CreatedAt:           doc.CreatedAt.Unix(),
		ItineraryIsComplete: len(plan.Itinerary) >= doc.Duration,
	}, nil
}

func (s *TripPlanStore) List(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.TripPlanSummary, int64, error) {
	if page < 1 {
		return nil, 0, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, 0, utils.ErrInvalidPageSize
	}

	docs, total, err := s.repo.ListByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		var dbErr *utils.DatabaseError
		if errors.As(err, &dbErr) {
			return nil, 0, err
		}
		return nil, 0, &utils.DatabaseError{Message: "list trip plans", Cause: err}
	}

	summaries := make([]response_models.TripPlanSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, response_models.TripPlanSummary{
			ID:                 doc.ID.Hex(),
			Title:              doc.Title,
			Destination:        doc.Destination,
			DestinationCountry: doc.DestinationCountry,
			StartDate:          utils.FormatDay(doc.StartDate),
			EndDate:            utils.FormatDay(doc.EndDate),
			Duration:           doc.Duration,
			DestinationImage:   doc.DestinationImage,
			CreatedAt:          doc.CreatedAt.Unix(),
		})
	}
	return summaries, total, nil
}

// BuildBudgetBreakdown splits the group budget per day and per traveler.
// The nightly stay range uses the same 30-45% share of the daily budget as the prompt.
func BuildBudgetBreakdown(currency string, budget float64, days, travelers int) response_models.BudgetBreakdown {
	if days < 1 {
		days = 1
	}
	if travelers < 1 {
		travelers = 1
	}
	code := strings.ToUpper(currency)
	perDay := roundCents(budget / float64(days))
	return response_models.BudgetBreakdown{
		Currency:        code,
		Symbol:          CurrencySymbol(code),
		Total:           budget,
		PerDay:          perDay,
		PerPerson:       roundCents(budget / float64(travelers)),
		StayPerNightMin: roundCents(budget / float64(days) * stayShareMin),
		StayPerNightMax: roundCents(budget / float64(days) * stayShareMax),
		FormattedTotal:  formatMoney(code, budget),
		FormattedPerDay: formatMoney(code, perDay),
	}
}
