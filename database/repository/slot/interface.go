// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"slotswapper/database"
	"slotswapper/models"
	"slotswapper/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrStateConflict is returned when a state-guarded update observed a slot
// whose status no longer matches the expected one (or the slot is gone).
var ErrStateConflict = errors.New("slot state conflict")

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	// GetByID returns (nil, nil) when no slot with the given id exists.
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Slot, error)
	// ListOffered returns the owner's slots currently marked swappable.
	ListOffered(ctx context.Context, ownerID string) ([]models.Slot, error)
	// ListOfferedByOthers returns swappable slots owned by anyone but userID.
	ListOfferedByOthers(ctx context.Context, userID string) ([]models.Slot, error)
	UpdateDetails(ctx context.Context, slot *models.Slot) error
	// Delete removes the slot only while it is not LOCKED.
	Delete(ctx context.Context, id, ownerID string) error
	// CompareAndSetMany applies every change or none: each update is guarded
	// by the slot's expected status and a single mismatch fails the whole
	// batch with ErrStateConflict. Callers needing atomicity across the
	// batch must invoke it inside a database.TxRunner transaction.
	CompareAndSetMany(ctx context.Context, changes []models.SlotStateChange) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure slot indexes", zap.Error(err))
	}
	return repo
}
