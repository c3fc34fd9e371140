// File: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: a user's own slots ordered by start time.
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("owner_start_idx"),
		},
		// Marketplace listing: offered slots excluding the caller's own.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "ownerId", Value: 1}},
			Options: options.Index().SetName("status_owner_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
