package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

const (
	genericPlanFailureMessage = "We couldn't generate your trip plan right now. Please try again in a few minutes."
	signInRequiredMessage     = "Please sign in to generate a trip plan."
)

type TripPlanServiceInterface interface {
	// GenerateTripPlan runs the whole pipeline for the principal in ctx. A non-nil error is
	// always a *utils.PlanError whose Message can be shown to the user.
	GenerateTripPlan(ctx context.Context, raw request_models.TripPlanRequest) (string, error)
	GetTripPlan(ctx context.Context, planID string) (*response_models.TripPlanResponse, error)
	ListTripPlans(ctx context.Context, page, pageSize int) ([]response_models.TripPlanSummary, int64, error)
	ExportCalendar(ctx context.Context, planID string) (string, error)
}

type TripPlanService struct {
	credits    CreditServiceInterface
	validator  *TripValidator
	ai         utils.PlanGenerationClient
	images     ImageServiceInterface
	enrichment EnrichmentServiceInterface
	store      TripPlanStoreInterface
	cfg        config.PipelineConfig
	logger     *zap.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewTripPlanService accepts nil for ai, images and enrichment. A nil ai client fails every
// generation after refunding; nil images or enrichment are simply skipped.
func NewTripPlanService(
	credits CreditServiceInterface,
	ai utils.PlanGenerationClient,
	images ImageServiceInterface,
	enrichment EnrichmentServiceInterface,
	store TripPlanStoreInterface,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) TripPlanServiceInterface {
	return &TripPlanService{
		credits:    credits,
		validator:  NewTripValidator(cfg.MaxTripDays),
		ai:         ai,
		images:     images,
		enrichment: enrichment,
		store:      store,
		cfg:        cfg,
		logger:     logger.Named("trip_plans"),
		tracer:     otel.Tracer("TripPlanService"),
		now:        time.Now,
	}
}

func (s *TripPlanService) GenerateTripPlan(ctx context.Context, raw request_models.TripPlanRequest) (planID string, err error) {
	ctx, span := s.tracer.Start(ctx, "GenerateTripPlan")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "trip plan generation failed")
		}
		span.End()
	}()

	principal, ok := utils.PrincipalFromContext(ctx)
	if !ok {
		return "", s.planError(utils.ErrUnauthenticated)
	}
	owner := principal.UserID
	cost := s.cfg.CreditCostPerPlan
	log := s.logger.With(zap.String("owner", owner))
	span.SetAttributes(attribute.String("owner.id", owner))

	if err := s.reserveCredits(ctx, owner, cost); err != nil {
		log.Info("credit reservation rejected", zap.Error(err))
		return "", s.planError(err)
	}

	planID, err = s.runPipeline(ctx, owner, raw)
	if err != nil {
		log.Warn("trip plan generation failed", zap.Error(err))
		s.refund(ctx, owner, cost)
		return "", s.planError(err)
	}

	log.Info("trip plan generated", zap.String("plan_id", planID))
	return planID, nil
}

func (s *TripPlanService) reserveCredits(ctx context.Context, owner string, cost int) error {
	ctx, span := s.tracer.Start(ctx, "ReserveCredits")
	defer span.End()

	balance := s.credits.GetBalance(ctx, owner)
	if balance < cost {
		return &utils.InsufficientCreditsError{Required: cost, Available: balance}
	}
	if s.credits.Deduct(ctx, owner, cost) {
		return nil
	}

	// Lost a race with a concurrent generation, or the ledger failed.
	if current := s.credits.GetBalance(ctx, owner); current < cost {
		return &utils.InsufficientCreditsError{Required: cost, Available: current}
	}
	return &utils.DatabaseError{Message: "credit deduction failed"}
}

func (s *TripPlanService) runPipeline(ctx context.Context, owner string, raw request_models.TripPlanRequest) (string, error) {
	req, dates, err := s.validateRequest(ctx, raw)
	if err != nil {
		return "", err
	}

	prompt := BuildTripPrompt(req, dates)

	text, err := s.callAI(ctx, prompt, dates.Days)
	if err != nil {
		return "", err
	}

	plan, err := RepairAIPlan(text, dates.Days, s.logger)
	if err != nil {
		return "", err
	}

	destination := SplitDestination(req.Destination)
	image := s.destinationImage(ctx, destination)
	bundle := s.enrich(ctx, req, dates, destination)

	ctx, span := s.tracer.Start(ctx, "PersistPlan")
	defer span.End()
	return s.store.Save(ctx, SavePlanInput{
		OwnerID:          owner,
		Request:          req,
		Dates:            dates,
		Destination:      destination,
		Plan:             plan,
		Enrichment:       bundle,
		DestinationImage: image,
	})
}

func (s *TripPlanService) validateRequest(ctx context.Context, raw request_models.TripPlanRequest) (*TripRequest, *NormalizedDates, error) {
	_, span := s.tracer.Start(ctx, "ValidateRequest")
	defer span.End()

	req, dates, err := s.validator.Validate(raw)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", dates.Days),
	)
	return req, dates, nil
}

func (s *TripPlanService) callAI(ctx context.Context, prompt string, days int) (string, error) {
	if s.ai == nil {
		return "", &utils.AIServiceError{Message: "no AI provider configured", Cause: utils.ErrProviderDisabled}
	}

	maxTokens := s.cfg.TokenBudget(days)
	ctx, span := s.tracer.Start(ctx, "GeneratePlanJSON", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.Int("ai.max_tokens", maxTokens),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.AITimeout)
	defer cancel()

	text, err := s.ai.GenerateJSON(ctx, prompt, maxTokens)
	if err != nil {
		span.RecordError(err)
		return "", &utils.AIServiceError{Message: "AI plan generation failed", Cause: err}
	}
	return text, nil
}

func (s *TripPlanService) destinationImage(ctx context.Context, dest DestinationInfo) *string {
	if s.images == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "DestinationImage")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ImageTimeout)
	defer cancel()
	return s.images.DestinationImage(ctx, dest.City, dest.Country)
}

func (s *TripPlanService) enrich(ctx context.Context, req *TripRequest, dates *NormalizedDates, dest DestinationInfo) response_models.EnrichmentBundle {
	if s.enrichment == nil {
		return response_models.EnrichmentBundle{}
	}
	return s.enrichment.Enrich(ctx, EnrichmentQuery{
		City:      dest.City,
		Country:   dest.Country,
		StartDate: dates.Start,
		EndDate:   dates.End,
		Adults:    req.Adults,
		Children:  req.Children,
	})
}

// refund retries once and only logs a second failure; the caller's error stays unchanged.
func (s *TripPlanService) refund(ctx context.Context, owner string, amount int) {
	ctx = context.WithoutCancel(ctx)
	for attempt := 1; attempt <= 2; attempt++ {
		if s.credits.Add(ctx, owner, amount, db_models.CreditReasonRefund) {
			return
		}
		s.logger.Warn("credit refund failed", zap.String("owner", owner), zap.Int("amount", amount), zap.Int("attempt", attempt))
	}
	s.logger.Error("credit refund abandoned", zap.String("owner", owner), zap.Int("amount", amount))
}

func (s *TripPlanService) planError(err error) *utils.PlanError {
	var insufficient *utils.InsufficientCreditsError
	var validation *utils.ValidationError
	switch {
	case errors.Is(err, utils.ErrUnauthenticated):
		return &utils.PlanError{Message: signInRequiredMessage, Cause: err}
	case errors.As(err, &insufficient):
		return &utils.PlanError{Message: insufficient.Error(), Cause: err}
	case errors.Is(err, ErrTripTooLong) && errors.As(err, &validation):
		return &utils.PlanError{Message: validation.Message, Cause: err}
	default:
		return &utils.PlanError{Message: genericPlanFailureMessage, Cause: err}
	}
}

func (s *TripPlanService) GetTripPlan(ctx context.Context, planID string) (*response_models.TripPlanResponse, error) {
	principal, ok := utils.PrincipalFromContext(ctx)
	if !ok {
		return nil, utils.ErrUnauthenticated
	}
	return s.store.Get(ctx, principal.UserID, planID)
}

func (s *TripPlanService) ListTripPlans(ctx context.Context, page, pageSize int) ([]response_models.TripPlanSummary, int64, error) {
	principal, ok := utils.PrincipalFromContext(ctx)
	if !ok {
		return nil, 0, utils.ErrUnauthenticated
	}
	return s.store.List(ctx, principal.UserID, page, pageSize)
}

func (s *TripPlanService) ExportCalendar(ctx context.Context, planID string) (string, error) {
	plan, err := s.GetTripPlan(ctx, planID)
	if err != nil {
		return "", err
	}
	return BuildItineraryCalendar(plan, s.now())
}
