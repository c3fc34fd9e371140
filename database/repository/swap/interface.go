// File: database/repository/swap/interface.go
package swapRepo

import (
	"context"
	"errors"
	"time"

	"slotswapper/database"
	"slotswapper/models"
	"slotswapper/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotPending is returned when a finalize targeted a request that is
	// no longer (or never was) PENDING.
	ErrNotPending = errors.New("swap request not pending")
	// ErrDuplicatePending is returned when creating a request would leave a
	// slot referenced by two live negotiations. The LOCKED slot state is the
	// primary guard; the unique index behind this error is the second line
	// of defense.
	ErrDuplicatePending = errors.New("slot already referenced by a pending swap request")
)

type SwapRepository interface {
	Create(ctx context.Context, req *models.SwapRequest) error
	// GetByID returns (nil, nil) when no request with the given id exists.
	GetByID(ctx context.Context, id string) (*models.SwapRequest, error)
	// FinalizeIfPending moves the request from PENDING to the given terminal
	// status, failing with ErrNotPending if it has already been resolved.
	FinalizeIfPending(ctx context.Context, id string, status models.SwapStatus) error
	// ListIncoming returns pending requests awaiting the user's decision,
	// newest first.
	ListIncoming(ctx context.Context, userID string) ([]models.SwapRequest, error)
	// ListOutgoing returns every request the user has proposed, newest first.
	ListOutgoing(ctx context.Context, userID string) ([]models.SwapRequest, error)
	// ListPendingOlderThan returns pending requests created before cutoff.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.SwapRequest, error)
}

type mongoSwapRepo struct {
	coll *mongo.Collection
}

// NewMongoSwapRepo constructs a new MongoDB SwapRepository.
func NewMongoSwapRepo() SwapRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoSwapRepo{
		coll: db.Collection("swap_requests"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure swap request indexes", zap.Error(err))
	}
	return repo
}
