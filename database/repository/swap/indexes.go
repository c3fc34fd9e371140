// File: database/repository/swap/indexes.go
package swapRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotswapper/models"
)

// EnsureIndexes creates the necessary indexes on the swap_requests
// collection. The two partial unique indexes guarantee at most one PENDING
// request references any given slot, independent of the LOCKED slot guard.
func (r *mongoSwapRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pendingOnly := bson.M{"status": models.SwapStatusPending}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "proposerSlotId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(pendingOnly).
				SetName("unique_pending_proposer_slot"),
		},
		{
			Keys: bson.D{{Key: "counterpartSlotId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(pendingOnly).
				SetName("unique_pending_counterpart_slot"),
		},
		{
			Keys:    bson.D{{Key: "counterpartId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("counterpart_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "proposerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("proposer_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
