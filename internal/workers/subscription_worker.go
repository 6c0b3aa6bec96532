package workers

import (
	"context"
	"time"

	"reachiq/internal/logger"

	"gorm.io/gorm"
)

// SubscriptionWorker expires subscriptions whose billing period has ended.
// An expired subscription fails the active check, so every quota gate
// closes at once; usage counters are left untouched for reporting.
type SubscriptionWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:       db,
		interval: 6 * time.Hour,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.expireSubscriptions(ctx)
}

func (w *SubscriptionWorker) expireSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *SubscriptionWorker) runOnce() {
	result := w.db.Exec(`
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active'
		AND end_date < NOW()
	`)
	if result.Error != nil {
		logger.WorkerLog("subscription", "expire", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("Expired subscriptions", "count", result.RowsAffected)
	}
}
