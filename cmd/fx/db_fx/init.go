package db_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/infra"
)

var Module = fx.Provide(
	provideDB, provideMongo, provideTripPlansCollection, provideRedis)

func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.CloseDatabase(db, logger)
			return nil
		},
	})
	return db, nil
}

func provideMongo(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*mongo.Client, error) {
	client, err := infra.ConnectMongo(context.Background(), cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func provideTripPlansCollection(client *mongo.Client, cfg *config.Config) (*mongo.Collection, error) {
	return infra.TripPlansCollection(context.Background(), client, cfg.Mongo)
}

// provideRedis yields a nil client when REDIS_ADDR is empty.
func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client, err := infra.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("redis not configured, provider cache stays in memory")
		return nil, nil
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
