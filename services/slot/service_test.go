package slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slotRepo "slotswapper/database/repository/slot"
	"slotswapper/models"
)

// memSlotRepo is a map-backed SlotRepository for exercising the service
// without a mongod.
type memSlotRepo struct {
	slots map[string]models.Slot
}

func newMemSlotRepo(seed ...models.Slot) *memSlotRepo {
	r := &memSlotRepo{slots: make(map[string]models.Slot)}
	for _, s := range seed {
		r.slots[s.ID] = s
	}
	return r
}

func (r *memSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memSlotRepo) GetByID(_ context.Context, id string) (*models.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (r *memSlotRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range r.slots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListOffered(_ context.Context, ownerID string) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range r.slots {
		if s.OwnerID == ownerID && s.Status == models.SlotStatusOffered {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListOfferedByOthers(_ context.Context, userID string) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range r.slots {
		if s.OwnerID != userID && s.Status == models.SlotStatusOffered {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) UpdateDetails(_ context.Context, slot *models.Slot) error {
	existing, ok := r.slots[slot.ID]
	if !ok || existing.Status == models.SlotStatusLocked {
		return slotRepo.ErrStateConflict
	}
	existing.Title = slot.Title
	existing.StartTime = slot.StartTime
	existing.EndTime = slot.EndTime
	r.slots[slot.ID] = existing
	return nil
}

func (r *memSlotRepo) Delete(_ context.Context, id, ownerID string) error {
	existing, ok := r.slots[id]
	if !ok || existing.OwnerID != ownerID || existing.Status == models.SlotStatusLocked {
		return slotRepo.ErrStateConflict
	}
	delete(r.slots, id)
	return nil
}

func (r *memSlotRepo) CompareAndSetMany(_ context.Context, changes []models.SlotStateChange) error {
	for _, change := range changes {
		s, ok := r.slots[change.SlotID]
		if !ok || s.Status != change.ExpectedState {
			return fmt.Errorf("slot %s not in state %s: %w", change.SlotID, change.ExpectedState, slotRepo.ErrStateConflict)
		}
	}
	for _, change := range changes {
		s := r.slots[change.SlotID]
		s.Status = change.NewState
		if change.NewOwnerID != "" {
			s.OwnerID = change.NewOwnerID
		}
		r.slots[change.SlotID] = s
	}
	return nil
}

func seededSlot(id, ownerID string, status models.SlotStatus) models.Slot {
	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	return models.Slot{
		ID:        id,
		Title:     "seed " + id,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		OwnerID:   ownerID,
		Status:    status,
	}
}

func TestCreateSlot(t *testing.T) {
	svc := &DefaultSlotService{Repo: newMemSlotRepo()}
	ctx := context.Background()
	start := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)

	slot, err := svc.Create(ctx, "alice", models.CreateSlotRequest{
		Title:     "Tuesday shift",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "alice", slot.OwnerID)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)
}

func TestCreateSlotValidation(t *testing.T) {
	svc := &DefaultSlotService{Repo: newMemSlotRepo()}
	ctx := context.Background()
	start := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, "alice", models.CreateSlotRequest{
		Title:     "   ",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "alice", models.CreateSlotRequest{
		Title:     "backwards",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	svc := &DefaultSlotService{Repo: newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusAvailable))}
	ctx := context.Background()

	got, err := svc.GetByID(ctx, "alice", "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	// Another user's slot reads as not found rather than forbidden.
	_, err = svc.GetByID(ctx, "bob", "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, "alice", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleStatus(t *testing.T) {
	repo := newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusAvailable))
	svc := &DefaultSlotService{Repo: repo}
	ctx := context.Background()

	slot, err := svc.ToggleStatus(ctx, "alice", "s1", models.SlotStatusOffered)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusOffered, slot.Status)

	slot, err = svc.ToggleStatus(ctx, "alice", "s1", models.SlotStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)

	// Toggling to the current status is a no-op, not an error.
	slot, err = svc.ToggleStatus(ctx, "alice", "s1", models.SlotStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)
}

func TestToggleStatusRejectsLockedTarget(t *testing.T) {
	svc := &DefaultSlotService{Repo: newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusAvailable))}

	_, err := svc.ToggleStatus(context.Background(), "alice", "s1", models.SlotStatusLocked)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLockedSlotRefusesMutation(t *testing.T) {
	repo := newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusLocked))
	svc := &DefaultSlotService{Repo: repo}
	ctx := context.Background()

	_, err := svc.ToggleStatus(ctx, "alice", "s1", models.SlotStatusOffered)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = svc.UpdateDetails(ctx, "alice", "s1", models.UpdateSlotRequest{Title: "renamed"})
	assert.ErrorIs(t, err, ErrLocked)

	err = svc.Delete(ctx, "alice", "s1")
	assert.ErrorIs(t, err, ErrLocked)

	// The slot itself is untouched.
	s, _ := repo.GetByID(ctx, "s1")
	assert.Equal(t, models.SlotStatusLocked, s.Status)
	assert.Equal(t, "seed s1", s.Title)
}

func TestUpdateDetails(t *testing.T) {
	repo := newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusOffered))
	svc := &DefaultSlotService{Repo: repo}
	ctx := context.Background()

	updated, err := svc.UpdateDetails(ctx, "alice", "s1", models.UpdateSlotRequest{Title: "late shift"})
	require.NoError(t, err)
	assert.Equal(t, "late shift", updated.Title)

	// Keeping the offered state through an edit.
	assert.Equal(t, models.SlotStatusOffered, updated.Status)

	start := time.Date(2026, 9, 4, 8, 0, 0, 0, time.UTC)
	_, err = svc.UpdateDetails(ctx, "alice", "s1", models.UpdateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteSlot(t *testing.T) {
	repo := newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusAvailable))
	svc := &DefaultSlotService{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "alice", "s1"))

	err := svc.Delete(ctx, "alice", "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRepoGuardMapsToLocked(t *testing.T) {
	// Simulate the slot being locked between the service read and the
	// guarded write.
	repo := &racingRepo{memSlotRepo: newMemSlotRepo(seededSlot("s1", "alice", models.SlotStatusOffered))}
	svc := &DefaultSlotService{Repo: repo}

	_, err := svc.UpdateDetails(context.Background(), "alice", "s1", models.UpdateSlotRequest{Title: "renamed"})
	assert.ErrorIs(t, err, ErrLocked)
}

type racingRepo struct {
	*memSlotRepo
}

func (r *racingRepo) UpdateDetails(ctx context.Context, slot *models.Slot) error {
	s := r.slots[slot.ID]
	s.Status = models.SlotStatusLocked
	r.slots[slot.ID] = s
	return r.memSlotRepo.UpdateDetails(ctx, slot)
}
