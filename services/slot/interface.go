package slot

import (
	"context"
	"errors"

	slotRepo "slotswapper/database/repository/slot"
	"slotswapper/models"
)

var (
	// ErrNotFound is returned when the slot does not exist or is not owned
	// by the caller.
	ErrNotFound = errors.New("slot not found")
	// ErrLocked is returned when a mutation targets a slot held by a pending
	// swap negotiation.
	ErrLocked = errors.New("slot is locked by a pending swap")
	// ErrInvalidInput is returned for malformed slot data.
	ErrInvalidInput = errors.New("invalid slot data")
)

// SlotService manages slot lifecycle outside of swap participation. It
// never touches a LOCKED slot; only the swap engine moves slots into and
// out of that state.
type SlotService interface {
	Create(ctx context.Context, ownerID string, input models.CreateSlotRequest) (*models.Slot, error)
	GetByID(ctx context.Context, ownerID, slotID string) (*models.Slot, error)
	ListMine(ctx context.Context, ownerID string) ([]models.Slot, error)
	ListMineOffered(ctx context.Context, ownerID string) ([]models.Slot, error)
	UpdateDetails(ctx context.Context, ownerID, slotID string, input models.UpdateSlotRequest) (*models.Slot, error)
	// ToggleStatus flips the slot between AVAILABLE and OFFERED.
	ToggleStatus(ctx context.Context, ownerID, slotID string, status models.SlotStatus) (*models.Slot, error)
	Delete(ctx context.Context, ownerID, slotID string) error
}

// DefaultSlotService implements SlotService.
type DefaultSlotService struct {
	Repo slotRepo.SlotRepository
}
