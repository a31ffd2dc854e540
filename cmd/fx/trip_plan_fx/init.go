package trip_plan_fx

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideTripPlanRepo, provideTripPlanStore, provideTripPlanService)

func provideTripPlanRepo(coll *mongo.Collection) repositories.TripPlanRepository {
	return repositories.NewTripPlanRepository(coll)
}

func provideTripPlanStore(repo repositories.TripPlanRepository, logger *zap.Logger) services.TripPlanStoreInterface {
	return services.NewTripPlanStore(repo, logger)
}

func provideTripPlanService(
	credits services.CreditServiceInterface,
	ai utils.PlanGenerationClient,
	images services.ImageServiceInterface,
	enrichment services.EnrichmentServiceInterface,
	store services.TripPlanStoreInterface,
	pipeline config.PipelineConfig,
	logger *zap.Logger,
) services.TripPlanServiceInterface {
	return services.NewTripPlanService(credits, ai, images, enrichment, store, pipeline, logger)
}
