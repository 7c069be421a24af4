package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/marcelsud/webhook-courier/metrics"
	"go.uber.org/zap"
)

/* Sweeper periodically deletes delivery logs older than the retention
 * horizon. The delete runs in a single transaction inside the repository;
 * a failed pass is logged and retried on the next tick.
 */
type Sweeper struct {
	logs        delivery.Purger
	horizon     time.Duration
	interval    time.Duration
	logger      *zap.Logger
	instruments *metrics.Instruments
}

// New creates a retention sweeper. Instruments may be nil.
func New(logs delivery.Purger, horizon, interval time.Duration, logger *zap.Logger, instruments *metrics.Instruments) *Sweeper {
	return &Sweeper{
		logs:        logs,
		horizon:     horizon,
		interval:    interval,
		logger:      logger,
		instruments: instruments,
	}
}

// Start runs one pass immediately and then once per interval until the
// context is cancelled
func (s *Sweeper) Start(ctx context.Context) {
	if _, err := s.PurgeOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("log retention pass failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.PurgeOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("log retention pass failed", zap.Error(err))
			}
		}
	}
}

// PurgeOnce deletes rows older than the horizon and returns how many went
func (s *Sweeper) PurgeOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.horizon)

	deleted, err := s.logs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging delivery logs: %w", err)
	}

	s.instruments.LogsPurged(ctx, deleted)
	s.logger.Info("purged delivery logs",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff),
	)
	return deleted, nil
}
