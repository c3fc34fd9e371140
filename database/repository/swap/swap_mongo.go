// File: database/repository/swap/swap_mongo.go
package swapRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotswapper/models"
)

func (r *mongoSwapRepo) Create(ctx context.Context, req *models.SwapRequest) error {
	_, err := r.coll.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicatePending
	}
	if err != nil {
		return fmt.Errorf("failed to create swap request: %w", err)
	}
	return nil
}

func (r *mongoSwapRepo) GetByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.SwapRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mongoSwapRepo) FinalizeIfPending(ctx context.Context, id string, status models.SwapStatus) error {
	filter := bson.M{"id": id, "status": models.SwapStatusPending}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to finalize swap request: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *mongoSwapRepo) ListIncoming(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	filter := bson.M{
		"counterpartId": userID,
		"status":        models.SwapStatusPending,
	}
	return r.list(ctx, filter)
}

func (r *mongoSwapRepo) ListOutgoing(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return r.list(ctx, bson.M{"proposerId": userID})
}

func (r *mongoSwapRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.SwapRequest, error) {
	filter := bson.M{
		"status":    models.SwapStatusPending,
		"createdAt": bson.M{"$lt": cutoff},
	}
	return r.list(ctx, filter)
}

func (r *mongoSwapRepo) list(ctx context.Context, filter bson.M) ([]models.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.SwapRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}
