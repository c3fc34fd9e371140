// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotswapper/models"
)

func sortByStartTime() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
}

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, slot)
	return err
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Slot, error) {
	return r.list(ctx, bson.M{"ownerId": ownerID})
}

func (r *mongoSlotRepo) ListOffered(ctx context.Context, ownerID string) ([]models.Slot, error) {
	return r.list(ctx, bson.M{"ownerId": ownerID, "status": models.SlotStatusOffered})
}

func (r *mongoSlotRepo) ListOfferedByOthers(ctx context.Context, userID string) ([]models.Slot, error) {
	return r.list(ctx, bson.M{"ownerId": bson.M{"$ne": userID}, "status": models.SlotStatusOffered})
}

func (r *mongoSlotRepo) list(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, sortByStartTime())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoSlotRepo) UpdateDetails(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Details may only change while the slot is not held by a negotiation.
	filter := bson.M{
		"id":      slot.ID,
		"ownerId": slot.OwnerID,
		"status":  bson.M{"$ne": models.SlotStatusLocked},
	}
	update := bson.M{"$set": bson.M{
		"title":     slot.Title,
		"startTime": slot.StartTime,
		"endTime":   slot.EndTime,
		"updatedAt": time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":      id,
		"ownerId": ownerID,
		"status":  bson.M{"$ne": models.SlotStatusLocked},
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrStateConflict
	}
	return nil
}
