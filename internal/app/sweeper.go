package app

import (
	"context"
	"time"
)

// runSweeper periodically reclaims PENDING orders whose hold window has
// elapsed, returning their seats to the pool. Runs until ctx is cancelled.
func (app *Application) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(app.config.SweepInterval)
	defer ticker.Stop()

	app.logger.Info("starting expiry sweeper", "interval", app.config.SweepInterval)

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("stopping expiry sweeper")
			return
		case <-ticker.C:
			app.sweepExpiredOrders(ctx)
		}
	}
}

// sweepExpiredOrders expires each overdue order in its own transaction, so
// one poisoned order cannot block the rest of the batch. At most one sweep
// runs at a time; a tick that finds a sweep still in progress is dropped.
func (app *Application) sweepExpiredOrders(ctx context.Context) {
	if !app.sweepMu.TryLock() {
		app.logger.Warn("previous sweep still running, skipping this tick")
		return
	}
	defer app.sweepMu.Unlock()

	now := time.Now()

	orderIDs, err := app.orderRepo.FindExpired(ctx, now)
	if err != nil {
		app.logger.Error("failed to list expired orders", "error", err)
		return
	}

	if len(orderIDs) == 0 {
		return
	}

	expired := 0

	for _, orderID := range orderIDs {
		err = app.orderRepo.ExpireOrder(ctx, orderID)
		if err != nil {
			app.logger.Error("failed to expire order", "order_id", orderID, "error", err)
			continue
		}
		expired++
	}

	app.metrics.ordersExpired.Add(ctx, int64(expired))
	app.logger.Info("swept expired orders", "found", len(orderIDs), "expired", expired)
}
