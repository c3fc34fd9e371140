package swap

import (
	"context"

	"go.uber.org/zap"

	"slotswapper/models"
	"slotswapper/utils"
)

// ListIncoming returns the pending requests where the user is the
// counterpart, newest first, hydrated with the proposer and both slots.
// Reads go to the same store the engine writes, so a freshly resolved
// request never shows up as pending.
func (s *DefaultSwapService) ListIncoming(ctx context.Context, userID string) ([]models.SwapRequestView, error) {
	reqs, err := s.SwapRepo.ListIncoming(ctx, userID)
	if err != nil {
		return nil, NewUnavailableError("failed to fetch incoming swap requests")
	}
	return s.hydrate(ctx, reqs), nil
}

// ListOutgoing returns every request the user has proposed, any status,
// newest first.
func (s *DefaultSwapService) ListOutgoing(ctx context.Context, userID string) ([]models.SwapRequestView, error) {
	reqs, err := s.SwapRepo.ListOutgoing(ctx, userID)
	if err != nil {
		return nil, NewUnavailableError("failed to fetch outgoing swap requests")
	}
	return s.hydrate(ctx, reqs), nil
}

// ListSwappable returns the marketplace view: offered slots owned by
// anyone but the caller.
func (s *DefaultSwapService) ListSwappable(ctx context.Context, userID string) ([]models.Slot, error) {
	slots, err := s.SlotRepo.ListOfferedByOthers(ctx, userID)
	if err != nil {
		return nil, NewUnavailableError("failed to fetch swappable slots")
	}
	return slots, nil
}

func (s *DefaultSwapService) hydrate(ctx context.Context, reqs []models.SwapRequest) []models.SwapRequestView {
	views := make([]models.SwapRequestView, 0, len(reqs))
	for _, req := range reqs {
		view := models.SwapRequestView{SwapRequest: req}
		view.Proposer = s.userSummary(ctx, req.ProposerID)
		view.Counterpart = s.userSummary(ctx, req.CounterpartID)
		view.ProposerSlot = s.slotInfo(ctx, req.ProposerSlotID)
		view.CounterpartSlot = s.slotInfo(ctx, req.CounterpartSlotID)
		views = append(views, view)
	}
	return views
}

func (s *DefaultSwapService) userSummary(ctx context.Context, userID string) *models.UserSummary {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		utils.GetLogger().Warn("failed to hydrate user for swap listing",
			zap.String("userId", userID), zap.Error(err))
		return nil
	}
	return user.Summary()
}

func (s *DefaultSwapService) slotInfo(ctx context.Context, slotID string) *models.Slot {
	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if err != nil || slot == nil {
		utils.GetLogger().Warn("failed to hydrate slot for swap listing",
			zap.String("slotId", slotID), zap.Error(err))
		return nil
	}
	return slot
}
