package swap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	slotRepo "slotswapper/database/repository/slot"
	swapRepo "slotswapper/database/repository/swap"
	"slotswapper/models"
	"slotswapper/utils"
)

// Propose validates both slots, then in one transaction locks them and
// creates the PENDING swap request. The state-guarded lock is the race
// arbiter: if a concurrent proposal already moved either slot out of
// OFFERED, the conditional update misses, the transaction aborts, and the
// caller gets a conflict with nothing created.
func (s *DefaultSwapService) Propose(ctx context.Context, proposerID, proposerSlotID, counterpartSlotID string) (*models.SwapRequest, error) {
	if proposerSlotID == counterpartSlotID {
		return nil, NewSelfSwapError("cannot swap a slot with itself")
	}

	mySlot, err := s.SlotRepo.GetByID(ctx, proposerSlotID)
	if err != nil {
		return nil, NewUnavailableError("failed to look up the offered slot")
	}
	if mySlot == nil {
		return nil, NewNotFoundError("the slot you are offering was not found")
	}

	theirSlot, err := s.SlotRepo.GetByID(ctx, counterpartSlotID)
	if err != nil {
		return nil, NewUnavailableError("failed to look up the requested slot")
	}
	if theirSlot == nil {
		return nil, NewNotFoundError("the slot you are requesting was not found")
	}

	if mySlot.OwnerID != proposerID {
		return nil, NewForbiddenError("the slot you are offering is not owned by you")
	}
	if theirSlot.OwnerID == proposerID {
		return nil, NewSelfSwapError("cannot request a swap for your own slot")
	}
	if mySlot.Status != models.SlotStatusOffered {
		return nil, NewInvalidStateError("the slot you are offering is not marked swappable")
	}
	if theirSlot.Status != models.SlotStatusOffered {
		return nil, NewInvalidStateError("the slot you are requesting is not marked swappable")
	}

	now := time.Now()
	req := &models.SwapRequest{
		ID:                uuid.New().String(),
		ProposerID:        proposerID,
		ProposerSlotID:    proposerSlotID,
		CounterpartID:     theirSlot.OwnerID,
		CounterpartSlotID: counterpartSlotID,
		Status:            models.SwapStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Re-checked under the transaction: both slots must still be OFFERED.
		changes := []models.SlotStateChange{
			{SlotID: proposerSlotID, ExpectedState: models.SlotStatusOffered, NewState: models.SlotStatusLocked},
			{SlotID: counterpartSlotID, ExpectedState: models.SlotStatusOffered, NewState: models.SlotStatusLocked},
		}
		if err := s.SlotRepo.CompareAndSetMany(txCtx, changes); err != nil {
			return err
		}
		return s.SwapRepo.Create(txCtx, req)
	})
	if err != nil {
		return nil, s.mapStoreError(err, "another negotiation already holds one of the slots")
	}

	utils.GetLogger().Info("swap request created",
		zap.String("requestId", req.ID),
		zap.String("proposerId", proposerID),
		zap.String("counterpartId", req.CounterpartID))
	return req, nil
}

// Resolve finalizes a PENDING request as accepted or rejected. Both the
// record transition and the two slot transitions commit as one unit; a
// store conflict leaves the request PENDING and is safe to retry.
func (s *DefaultSwapService) Resolve(ctx context.Context, resolverID, requestID string, accept bool) (*models.SwapRequest, error) {
	req, err := s.SwapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, NewUnavailableError("failed to look up the swap request")
	}
	if req == nil {
		return nil, NewNotFoundError("swap request not found")
	}

	// Only the receiving party decides; the proposer cannot resolve their
	// own proposal.
	if req.CounterpartID != resolverID {
		return nil, NewForbiddenError("you are not authorized to respond to this request")
	}
	if req.Status != models.SwapStatusPending {
		return nil, NewAlreadyResolvedError("this request has already been " + string(req.Status))
	}

	status := models.SwapStatusRejected
	if accept {
		status = models.SwapStatusAccepted
	}

	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.SwapRepo.FinalizeIfPending(txCtx, req.ID, status); err != nil {
			return err
		}

		var changes []models.SlotStateChange
		if accept {
			// Exchange ownership; the consummated slots leave the market.
			changes = []models.SlotStateChange{
				{SlotID: req.ProposerSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusAvailable, NewOwnerID: req.CounterpartID},
				{SlotID: req.CounterpartSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusAvailable, NewOwnerID: req.ProposerID},
			}
		} else {
			// Full rollback to the pre-proposal state.
			changes = []models.SlotStateChange{
				{SlotID: req.ProposerSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusOffered},
				{SlotID: req.CounterpartSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusOffered},
			}
		}
		return s.SlotRepo.CompareAndSetMany(txCtx, changes)
	})
	if err != nil {
		return nil, s.mapStoreError(err, "the swap could not be settled, please retry")
	}

	req.Status = status
	req.UpdatedAt = time.Now()

	utils.GetLogger().Info("swap request resolved",
		zap.String("requestId", req.ID),
		zap.String("status", string(status)))
	return req, nil
}

// mapStoreError translates repository-level failures into the engine's
// typed error taxonomy.
func (s *DefaultSwapService) mapStoreError(err error, conflictMsg string) error {
	var swapErr *SwapError
	if errors.As(err, &swapErr) {
		return err
	}
	switch {
	case errors.Is(err, slotRepo.ErrStateConflict), errors.Is(err, swapRepo.ErrDuplicatePending):
		return NewConflictError(conflictMsg)
	case errors.Is(err, swapRepo.ErrNotPending):
		return NewAlreadyResolvedError("this request has already been resolved")
	default:
		utils.GetLogger().Error("swap transaction failed", zap.Error(err))
		return NewUnavailableError("the store could not complete the operation")
	}
}
