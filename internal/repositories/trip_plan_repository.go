package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"tripwise/internal/models/db_models"
	"tripwise/pkg/utils"
)

type TripPlanRepository interface {
	Insert(ctx context.Context, plan *db_models.TripPlan) (string, error)
	// FindByID returns nil, nil for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*db_models.TripPlan, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.TripPlan, int64, error)
}

type tripPlanRepository struct {
	coll *mongo.Collection
}

func NewTripPlanRepository(coll *mongo.Collection) TripPlanRepository {
	return &tripPlanRepository{coll: coll}
}

func (r *tripPlanRepository) Insert(ctx context.Context, plan *db_models.TripPlan) (string, error) {
	res, err := r.coll.InsertOne(ctx, plan)
	if err != nil {
		return "", &utils.DatabaseError{Message: "insert trip plan", Cause: err}
	}

	id, err := insertedIDToString(res.InsertedID)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid
	}
	return id, nil
}

func (r *tripPlanRepository) FindByID(ctx context.Context, id string) (*db_models.TripPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var plan db_models.TripPlan
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &utils.DatabaseError{Message: "find trip plan", Cause: err}
	}
	return &plan, nil
}

func (r *tripPlanRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.TripPlan, int64, error) {
	filter := bson.M{"ownerId": ownerID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, &utils.DatabaseError{Message: "count trip plans", Cause: err}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetProjection(bson.M{"itinerary": 0, "enrichment": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, &utils.DatabaseError{Message: "list trip plans", Cause: err}
	}
	defer cursor.Close(ctx)

	plans := make([]db_models.TripPlan, 0, pageSize)
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, 0, &utils.DatabaseError{Message: "decode trip plans", Cause: err}
	}
	return plans, total, nil
}

// insertedIDToString guards against a driver reporting success without a usable id.
func insertedIDToString(id interface{}) (string, error) {
	switch v := id.(type) {
	case primitive.ObjectID:
		if v.IsZero() {
			break
		}
		return v.Hex(), nil
	case string:
		if v != "" {
			return v, nil
		}
	}
	return "", &utils.DatabaseError{Message: fmt.Sprintf("insert reported success but returned no usable id (%T)", id)}
}
