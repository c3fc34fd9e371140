package swap

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	slotRepo "slotswapper/database/repository/slot"
	swapRepo "slotswapper/database/repository/swap"
	"slotswapper/models"
)

// In-memory doubles for the repository interfaces. CompareAndSetMany
// verifies every guard before applying anything, and the fake transaction
// runner snapshots both stores so a failing transaction body rolls back,
// matching the all-or-nothing behavior of the Mongo implementations.

type fakeSlotRepo struct {
	mu    sync.RWMutex
	slots map[string]models.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]models.Slot)}
}

func (f *fakeSlotRepo) put(s models.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[s.ID] = s
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	f.put(*slot)
	return nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id string) (*models.Slot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (f *fakeSlotRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Slot, error) {
	return f.filter(func(s models.Slot) bool { return s.OwnerID == ownerID }), nil
}

func (f *fakeSlotRepo) ListOffered(_ context.Context, ownerID string) ([]models.Slot, error) {
	return f.filter(func(s models.Slot) bool {
		return s.OwnerID == ownerID && s.Status == models.SlotStatusOffered
	}), nil
}

func (f *fakeSlotRepo) ListOfferedByOthers(_ context.Context, userID string) ([]models.Slot, error) {
	return f.filter(func(s models.Slot) bool {
		return s.OwnerID != userID && s.Status == models.SlotStatusOffered
	}), nil
}

func (f *fakeSlotRepo) filter(keep func(models.Slot) bool) []models.Slot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []models.Slot
	for _, s := range f.slots {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (f *fakeSlotRepo) UpdateDetails(_ context.Context, slot *models.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.slots[slot.ID]
	if !ok || existing.Status == models.SlotStatusLocked {
		return slotRepo.ErrStateConflict
	}
	existing.Title = slot.Title
	existing.StartTime = slot.StartTime
	existing.EndTime = slot.EndTime
	f.slots[slot.ID] = existing
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.slots[id]
	if !ok || existing.OwnerID != ownerID || existing.Status == models.SlotStatusLocked {
		return slotRepo.ErrStateConflict
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepo) CompareAndSetMany(_ context.Context, changes []models.SlotStateChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, change := range changes {
		s, ok := f.slots[change.SlotID]
		if !ok || s.Status != change.ExpectedState {
			return fmt.Errorf("slot %s not in state %s: %w", change.SlotID, change.ExpectedState, slotRepo.ErrStateConflict)
		}
	}
	for _, change := range changes {
		s := f.slots[change.SlotID]
		s.Status = change.NewState
		if change.NewOwnerID != "" {
			s.OwnerID = change.NewOwnerID
		}
		s.UpdatedAt = time.Now()
		f.slots[change.SlotID] = s
	}
	return nil
}

func (f *fakeSlotRepo) snapshot() map[string]models.Slot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	copied := make(map[string]models.Slot, len(f.slots))
	for k, v := range f.slots {
		copied[k] = v
	}
	return copied
}

func (f *fakeSlotRepo) restore(snap map[string]models.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots = snap
}

type fakeSwapRepo struct {
	mu   sync.RWMutex
	reqs map[string]models.SwapRequest
}

func newFakeSwapRepo() *fakeSwapRepo {
	return &fakeSwapRepo{reqs: make(map[string]models.SwapRequest)}
}

func (f *fakeSwapRepo) Create(_ context.Context, req *models.SwapRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reqs {
		if existing.Status != models.SwapStatusPending {
			continue
		}
		if existing.ProposerSlotID == req.ProposerSlotID ||
			existing.ProposerSlotID == req.CounterpartSlotID ||
			existing.CounterpartSlotID == req.ProposerSlotID ||
			existing.CounterpartSlotID == req.CounterpartSlotID {
			return swapRepo.ErrDuplicatePending
		}
	}
	f.reqs[req.ID] = *req
	return nil
}

func (f *fakeSwapRepo) GetByID(_ context.Context, id string) (*models.SwapRequest, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	r, ok := f.reqs[id]
	if !ok {
		return nil, nil
	}
	copied := r
	return &copied, nil
}

func (f *fakeSwapRepo) FinalizeIfPending(_ context.Context, id string, status models.SwapStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reqs[id]
	if !ok || r.Status != models.SwapStatusPending {
		return swapRepo.ErrNotPending
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	f.reqs[id] = r
	return nil
}

func (f *fakeSwapRepo) ListIncoming(_ context.Context, userID string) ([]models.SwapRequest, error) {
	return f.filter(func(r models.SwapRequest) bool {
		return r.CounterpartID == userID && r.Status == models.SwapStatusPending
	}), nil
}

func (f *fakeSwapRepo) ListOutgoing(_ context.Context, userID string) ([]models.SwapRequest, error) {
	return f.filter(func(r models.SwapRequest) bool { return r.ProposerID == userID }), nil
}

func (f *fakeSwapRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]models.SwapRequest, error) {
	return f.filter(func(r models.SwapRequest) bool {
		return r.Status == models.SwapStatusPending && r.CreatedAt.Before(cutoff)
	}), nil
}

func (f *fakeSwapRepo) filter(keep func(models.SwapRequest) bool) []models.SwapRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []models.SwapRequest
	for _, r := range f.reqs {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeSwapRepo) snapshot() map[string]models.SwapRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	copied := make(map[string]models.SwapRequest, len(f.reqs))
	for k, v := range f.reqs {
		copied[k] = v
	}
	return copied
}

func (f *fakeSwapRepo) restore(snap map[string]models.SwapRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = snap
}

type fakeUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SetTokenHash(_ context.Context, id, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.TokenHash = tokenHash
	f.users[id] = u
	return nil
}

// fakeTxRunner serializes transactions and restores both stores when the
// body fails, mirroring a real abort.
type fakeTxRunner struct {
	mu    sync.Mutex
	slots *fakeSlotRepo
	swaps *fakeSwapRepo
}

func (r *fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slotSnap := r.slots.snapshot()
	swapSnap := r.swaps.snapshot()
	if err := fn(ctx); err != nil {
		r.slots.restore(slotSnap)
		r.swaps.restore(swapSnap)
		return err
	}
	return nil
}
