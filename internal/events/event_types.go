package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShopApplied       EventType = "shop_applied"
	EventShopStatusChanged EventType = "shop_status_changed"
	EventUserRoleChanged   EventType = "user_role_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services. UserID is the
// user the event is about, which for shop events is the shop owner.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ShopAppliedPayload payload.
type ShopAppliedPayload struct {
	ShopID   string `json:"shop_id"`
	ShopName string `json:"shop_name"`
}

// ShopStatusChangedPayload payload.
type ShopStatusChangedPayload struct {
	ShopID    string            `json:"shop_id"`
	OldStatus domain.ShopStatus `json:"old_status"`
	NewStatus domain.ShopStatus `json:"new_status"`
}

// UserRoleChangedPayload payload. Consumers mark the user's session
// claim stale so the next refresh picks up the new role.
type UserRoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}
