package usecase

import (
	"context"
	"time"

	"github.com/swiftloan/disburser/internal/pkg/logger"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

const noteLoanReleased = "Loan has been released to your account."

// ReleaseSweeper periodically promotes processing receipts whose holding
// period has elapsed to loan_released.
type ReleaseSweeper struct {
	repo     receipts.ReceiptRepo
	eventsGW receipts.EventsGW
	interval time.Duration
	holding  time.Duration
}

// NewReleaseSweeper creates a release sweeper. eventsGW may be nil.
func NewReleaseSweeper(repo receipts.ReceiptRepo, eventsGW receipts.EventsGW, interval, holding time.Duration) *ReleaseSweeper {
	return &ReleaseSweeper{
		repo:     repo,
		eventsGW: eventsGW,
		interval: interval,
		holding:  holding,
	}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (s *ReleaseSweeper) Run(ctx context.Context) {
	logger.Info("Starting release sweeper",
		logger.Duration("interval", s.interval),
		logger.Duration("holding_period", s.holding))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Release sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.ReleaseDue(ctx, time.Now().UTC()); err != nil {
				logger.Error("Release sweep failed", logger.Err(err))
			}
		}
	}
}

// ReleaseDue releases every processing receipt whose deadline (transition
// timestamp plus the holding period) has been reached at now. It returns the
// number of receipts released. Each release re-checks status and deadline
// under the store lock, so racing callbacks cannot be overwritten.
func (s *ReleaseSweeper) ReleaseDue(ctx context.Context, now time.Time) (int, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}

	released := 0
	for reference, receipt := range all {
		if receipt.Status != models.StatusProcessing {
			continue
		}
		if now.Before(receipt.Timestamp.Add(s.holding)) {
			continue
		}

		applied := false
		updated, err := s.repo.Update(ctx, reference, func(existing *models.Receipt) (*models.Receipt, error) {
			if existing == nil || existing.Status != models.StatusProcessing {
				return nil, nil
			}
			if now.Before(existing.Timestamp.Add(s.holding)) {
				return nil, nil
			}
			if err := existing.Transition(models.StatusLoanReleased, noteLoanReleased, now); err != nil {
				return nil, err
			}
			applied = true
			return existing, nil
		})
		if err != nil {
			logger.Error("Failed to release loan",
				logger.String("reference", reference),
				logger.Err(err))
			continue
		}
		if !applied {
			continue
		}

		released++
		logger.Info("Released loan", logger.String("reference", reference))

		if s.eventsGW != nil {
			if err := s.eventsGW.PublishStatusChanged(ctx, updated); err != nil {
				logger.Warn("Failed to publish release event",
					logger.String("reference", reference),
					logger.Err(err))
			}
		}
	}

	return released, nil
}
