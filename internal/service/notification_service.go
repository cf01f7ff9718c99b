package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// NotificationService reacts to domain events: it records session
// staleness markers for role changes and emits notification stubs.
type NotificationService struct {
	dispatcher events.Dispatcher
	state      repository.SessionStateStore
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, state repository.SessionStateStore, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		state:      state,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRoleChanged, n.handleRoleChanged)
	n.dispatcher.Subscribe(events.EventShopStatusChanged, n.handleShopStatusChanged)
	n.dispatcher.Subscribe(events.EventShopApplied, n.handleShopApplied)
}

// handleRoleChanged marks the affected user's session claim stale. The
// token in the user's browser keeps its old role until the client's
// watcher calls refresh; the marker is what that watcher polls for.
func (n *NotificationService) handleRoleChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRoleChanged", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	if err := n.state.MarkStale(ctx, event.UserID); err != nil {
		n.logger.Warn("failed to mark session stale", zap.String("user_id", event.UserID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleShopStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ShopStatusChanged", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleShopApplied(ctx context.Context, event events.Event) error {
	n.logger.Info("ShopApplied", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
