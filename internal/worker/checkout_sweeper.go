package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

// OrderSweeper deletes checkout orders abandoned for longer than ttl.
type OrderSweeper interface {
	SweepStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// CheckoutSweeper periodically removes abandoned checkout orders.
type CheckoutSweeper struct {
	orders   OrderSweeper
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// DefaultSweepInterval replaces a non-positive interval.
const DefaultSweepInterval = time.Minute

func NewCheckoutSweeper(orders OrderSweeper, interval, ttl time.Duration) *CheckoutSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &CheckoutSweeper{
		orders:   orders,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (w *CheckoutSweeper) Start(ctx context.Context) {
	logger.Info("checkout sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("ttl", w.ttl),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("checkout sweeper stopped (context)")
			return
		case <-w.stopCh:
			logger.Info("checkout sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop signals Start to return and waits for it.
func (w *CheckoutSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *CheckoutSweeper) sweep(ctx context.Context) {
	n, err := w.orders.SweepStale(ctx, w.ttl)
	if err != nil {
		logger.Error("checkout sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("swept abandoned checkout orders", zap.Int64("count", n))
	} else {
		logger.Debug("no abandoned checkout orders")
	}
}
