package workers

import (
	"context"
	"time"

	"vlinky_backend/internal/logger"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
)

// EarningsWorker periodically recomputes per-creator earnings aggregates from
// the completed-request ledger. Aggregates are derived data; the worker
// overwrites rows wholesale, so a missed tick only delays freshness.
type EarningsWorker struct {
	requestRepo  repositories.RequestRepository
	earningsRepo repositories.EarningsRepository
	feePercent   float64
	interval     time.Duration
}

func NewEarningsWorker(
	requestRepo repositories.RequestRepository,
	earningsRepo repositories.EarningsRepository,
	feePercent float64,
	interval time.Duration,
) *EarningsWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &EarningsWorker{
		requestRepo:  requestRepo,
		earningsRepo: earningsRepo,
		feePercent:   feePercent,
		interval:     interval,
	}
}

// Start runs the recompute loop until ctx is cancelled. One pass runs
// immediately so dashboards are populated right after boot.
func (w *EarningsWorker) Start(ctx context.Context) {
	logger.Info("earnings worker started", "interval", w.interval.String())

	w.runOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("earnings worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *EarningsWorker) runOnce() {
	creatorIDs, err := w.requestRepo.CompletedCreatorIDs()
	if err != nil {
		logger.WorkerLog("earnings", "list_creators", err)
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextPayout := monthStart.AddDate(0, 1, 0)

	for _, creatorID := range creatorIDs {
		if err := w.recompute(creatorID, monthStart, nextPayout); err != nil {
			logger.WorkerLog("earnings", "recompute "+creatorID, err)
		}
	}
	logger.WorkerLog("earnings", "recompute", nil)
}

func (w *EarningsWorker) recompute(creatorID string, monthStart, nextPayout time.Time) error {
	grossTotal, err := w.requestRepo.SumCompletedPricesByCreator(creatorID, time.Time{})
	if err != nil {
		return err
	}
	grossMonth, err := w.requestRepo.SumCompletedPricesByCreator(creatorID, monthStart)
	if err != nil {
		return err
	}

	// Creators earn the order price net of the platform fee.
	share := 1 - w.feePercent/100

	return w.earningsRepo.Upsert(&models.CreatorEarnings{
		CreatorID:      creatorID,
		TotalEarnings:  grossTotal * share,
		PendingPayout:  grossMonth * share,
		MonthEarnings:  grossMonth * share,
		NextPayoutDate: nextPayout,
	})
}
