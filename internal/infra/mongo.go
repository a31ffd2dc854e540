package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"tripwise/internal/config"
)

func ConnectMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("mongo connected", zap.String("database", cfg.Database))
	return client, nil
}

// TripPlansCollection returns the plan collection with an owner/created index in place.
func TripPlansCollection(ctx context.Context, client *mongo.Client, cfg config.MongoConfig) (*mongo.Collection, error) {
	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create trip plan index: %w", err)
	}
	return coll, nil
}
