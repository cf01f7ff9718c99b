package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/service"
)

func TestRoleChangedEventMarksSessionStale(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	state := newFakeSessionState()

	svc := service.NewNotificationService(dispatcher, state, zap.NewNop(), config.NotificationConfig{})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventUserRoleChanged,
		UserID:    "u1",
		Actor:     events.Actor{UserID: "a1", Role: domain.RoleAdmin},
		Timestamp: time.Now(),
		Payload:   events.UserRoleChangedPayload{OldRole: domain.RoleBuyer, NewRole: domain.RoleSeller},
	})
	require.NoError(t, err)

	stale, err := state.IsStale(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, stale)
}
