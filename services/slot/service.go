package slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	slotRepo "slotswapper/database/repository/slot"
	"slotswapper/models"
	"slotswapper/utils"
)

// Create validates and persists a new slot. New slots start AVAILABLE; the
// owner opts into swapping by toggling to OFFERED.
func (s *DefaultSlotService) Create(ctx context.Context, ownerID string, input models.CreateSlotRequest) (*models.Slot, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	now := time.Now()
	slot := &models.Slot{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		OwnerID:   ownerID,
		Status:    models.SlotStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, slot); err != nil {
		utils.GetLogger().Error("failed to create slot", zap.Error(err))
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

func (s *DefaultSlotService) GetByID(ctx context.Context, ownerID, slotID string) (*models.Slot, error) {
	slot, err := s.Repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	if slot == nil || slot.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return slot, nil
}

func (s *DefaultSlotService) ListMine(ctx context.Context, ownerID string) ([]models.Slot, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *DefaultSlotService) ListMineOffered(ctx context.Context, ownerID string) ([]models.Slot, error) {
	return s.Repo.ListOffered(ctx, ownerID)
}

// UpdateDetails edits title and times. Refused while the slot is LOCKED.
func (s *DefaultSlotService) UpdateDetails(ctx context.Context, ownerID, slotID string, input models.UpdateSlotRequest) (*models.Slot, error) {
	slot, err := s.GetByID(ctx, ownerID, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == models.SlotStatusLocked {
		return nil, ErrLocked
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		slot.Title = title
	}
	if !input.StartTime.IsZero() {
		slot.StartTime = input.StartTime
	}
	if !input.EndTime.IsZero() {
		slot.EndTime = input.EndTime
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if err := s.Repo.UpdateDetails(ctx, slot); err != nil {
		// The repo guard rejects the write if the slot was locked between
		// the read above and the update.
		if errors.Is(err, slotRepo.ErrStateConflict) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}
	slot.UpdatedAt = time.Now()
	return slot, nil
}

// ToggleStatus flips a slot between AVAILABLE and OFFERED. LOCKED slots
// belong to the swap engine and cannot be toggled.
func (s *DefaultSlotService) ToggleStatus(ctx context.Context, ownerID, slotID string, status models.SlotStatus) (*models.Slot, error) {
	if status != models.SlotStatusAvailable && status != models.SlotStatusOffered {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrInvalidInput, models.SlotStatusAvailable, models.SlotStatusOffered)
	}

	slot, err := s.GetByID(ctx, ownerID, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == models.SlotStatusLocked {
		return nil, ErrLocked
	}
	if slot.Status == status {
		return slot, nil
	}

	change := models.SlotStateChange{
		SlotID:        slotID,
		ExpectedState: slot.Status,
		NewState:      status,
	}
	if err := s.Repo.CompareAndSetMany(ctx, []models.SlotStateChange{change}); err != nil {
		if errors.Is(err, slotRepo.ErrStateConflict) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to update slot status: %w", err)
	}

	slot.Status = status
	slot.UpdatedAt = time.Now()
	return slot, nil
}

// Delete removes a slot that is not held by a negotiation.
func (s *DefaultSlotService) Delete(ctx context.Context, ownerID, slotID string) error {
	slot, err := s.GetByID(ctx, ownerID, slotID)
	if err != nil {
		return err
	}
	if slot.Status == models.SlotStatusLocked {
		return ErrLocked
	}

	if err := s.Repo.Delete(ctx, slotID, ownerID); err != nil {
		if errors.Is(err, slotRepo.ErrStateConflict) {
			return ErrLocked
		}
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
