package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// StartNotificationWorker registers event handlers for notifications and
// session staleness markers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StatusSweeper periodically re-marks sessions of recently transitioned
// shop owners as stale. The in-band event handler normally does this; the
// sweep covers markers lost to a Redis hiccup. Marking is idempotent, so
// overlap with the event path is harmless.
type StatusSweeper struct {
	shops    repository.ShopRepository
	state    repository.SessionStateStore
	logger   *zap.Logger
	interval time.Duration
}

// NewStatusSweeper constructs the sweeper.
func NewStatusSweeper(shops repository.ShopRepository, state repository.SessionStateStore, logger *zap.Logger, interval time.Duration) *StatusSweeper {
	return &StatusSweeper{shops: shops, state: state, logger: logger, interval: interval}
}

// Run loops until the context is cancelled.
func (w *StatusSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("status sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *StatusSweeper) sweep(ctx context.Context) {
	// Look back two intervals so a slow tick cannot skip a transition.
	since := time.Now().Add(-2 * w.interval)

	shops, err := w.shops.ListChangedSince(ctx, since)
	if err != nil {
		w.logger.Warn("status sweep failed", zap.Error(err))
		return
	}

	for _, shop := range shops {
		if shop.Status == domain.ShopStatusPending {
			continue
		}
		if err := w.state.MarkStale(ctx, shop.OwnerID); err != nil {
			w.logger.Warn("failed to mark session stale",
				zap.String("user_id", shop.OwnerID), zap.Error(err))
		}
	}
}
