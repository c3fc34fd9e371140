// File: database/repository/slot/cas.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"slotswapper/models"
)

// CompareAndSetMany applies a batch of state-guarded slot updates. Each
// update matches only when the slot still carries the expected status, so a
// concurrent transition makes MatchedCount zero and the batch fails with
// ErrStateConflict. Run inside a transaction the failure aborts every
// already-applied update, which is what makes "lock both slots or neither"
// possible without holding an application-level lock.
func (r *mongoSlotRepo) CompareAndSetMany(ctx context.Context, changes []models.SlotStateChange) error {
	now := time.Now()
	for _, change := range changes {
		filter := bson.M{
			"id":     change.SlotID,
			"status": change.ExpectedState,
		}
		set := bson.M{
			"status":    change.NewState,
			"updatedAt": now,
		}
		if change.NewOwnerID != "" {
			set["ownerId"] = change.NewOwnerID
		}

		res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			return fmt.Errorf("conditional slot update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("slot %s not in state %s: %w", change.SlotID, change.ExpectedState, ErrStateConflict)
		}
	}
	return nil
}
