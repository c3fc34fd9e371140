package swap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slotswapper/config"
	"slotswapper/models"
	"slotswapper/utils"
)

// ReclaimStale rejects pending requests whose age exceeds the configured
// threshold, returning their locked slots to OFFERED. Each request settles
// through the same transactional path as an explicit reject, so a request
// resolved concurrently is simply skipped.
func (s *DefaultSwapService) ReclaimStale(ctx context.Context) (int, error) {
	maxAge := time.Duration(config.AppConfig.SwapPendingMaxAgeMin) * time.Minute
	cutoff := time.Now().Add(-maxAge)

	stale, err := s.SwapRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, NewUnavailableError("failed to scan for stale swap requests")
	}

	logger := utils.GetLogger()
	reclaimed := 0
	for _, req := range stale {
		err := s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := s.SwapRepo.FinalizeIfPending(txCtx, req.ID, models.SwapStatusRejected); err != nil {
				return err
			}
			changes := []models.SlotStateChange{
				{SlotID: req.ProposerSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusOffered},
				{SlotID: req.CounterpartSlotID, ExpectedState: models.SlotStatusLocked, NewState: models.SlotStatusOffered},
			}
			return s.SlotRepo.CompareAndSetMany(txCtx, changes)
		})
		if err != nil {
			logger.Warn("failed to reclaim stale swap request",
				zap.String("requestId", req.ID), zap.Error(err))
			continue
		}

		logger.Info("reclaimed stale swap request",
			zap.String("requestId", req.ID),
			zap.Time("createdAt", req.CreatedAt))
		reclaimed++
	}
	return reclaimed, nil
}
