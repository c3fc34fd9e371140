package swap

import (
	"context"

	"slotswapper/database"
	slotRepo "slotswapper/database/repository/slot"
	swapRepo "slotswapper/database/repository/swap"
	userRepo "slotswapper/database/repository/user"
	"slotswapper/models"
)

// SwapService is the negotiation engine plus its read-side projections. All
// mutation of slot ownership and swap-relevant slot state flows through
// Propose and Resolve; each call is one all-or-nothing transaction against
// the backing store.
type SwapService interface {
	// Propose locks both slots and creates a PENDING swap request. Of two
	// racing proposals touching the same slot, the first to commit wins and
	// the loser fails with a conflict, leaving no record behind.
	Propose(ctx context.Context, proposerID, proposerSlotID, counterpartSlotID string) (*models.SwapRequest, error)
	// Resolve finalizes a PENDING request. Only the counterpart may resolve.
	// Accept exchanges ownership and settles both slots back to AVAILABLE;
	// reject restores both slots to OFFERED with owners unchanged.
	Resolve(ctx context.Context, resolverID, requestID string, accept bool) (*models.SwapRequest, error)
	// ListIncoming returns pending requests awaiting the user's decision.
	ListIncoming(ctx context.Context, userID string) ([]models.SwapRequestView, error)
	// ListOutgoing returns every request the user has proposed.
	ListOutgoing(ctx context.Context, userID string) ([]models.SwapRequestView, error)
	// ListSwappable returns slots other users have marked swappable.
	ListSwappable(ctx context.Context, userID string) ([]models.Slot, error)
	// ReclaimStale rejects pending requests older than the configured age,
	// releasing their locked slots. Returns the number reclaimed.
	ReclaimStale(ctx context.Context) (int, error)
}

// DefaultSwapService implements SwapService.
type DefaultSwapService struct {
	SlotRepo slotRepo.SlotRepository
	SwapRepo swapRepo.SwapRepository
	UserRepo userRepo.UserRepository
	Tx       database.TxRunner
}
