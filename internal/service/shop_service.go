package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// shopTransitions is the full lifecycle: an application starts pending,
// an admin approves it to active or rejects it to suspended, an active
// shop can be suspended, and a suspended owner may re-apply, which resets
// the same shop back to pending.
var shopTransitions = map[domain.ShopStatus]map[domain.ShopStatus]struct{}{
	domain.ShopStatusPending: {
		domain.ShopStatusActive:    {},
		domain.ShopStatusSuspended: {},
	},
	domain.ShopStatusActive: {
		domain.ShopStatusSuspended: {},
	},
	domain.ShopStatusSuspended: {
		domain.ShopStatusPending: {},
	},
}

// ShopService runs the shop lifecycle state machine. Transitions that
// change the owner's role publish a role-changed event; the notification
// worker turns that into a session staleness marker that the owner's
// next refresh reconciles.
type ShopService struct {
	shops      repository.ShopRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ShopDependencies bundles repositories for the shop service.
type ShopDependencies struct {
	ShopRepo   repository.ShopRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewShopService constructs the service.
func NewShopService(deps ShopDependencies) *ShopService {
	return &ShopService{
		shops:      deps.ShopRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Apply submits a shop application for the acting user. A user with no
// shop gets a fresh pending shop; a user whose shop was suspended
// re-applies, resetting that shop to pending; anything else conflicts.
// The unique owner index in storage resolves racing duplicates.
func (s *ShopService) Apply(ctx context.Context, actor *domain.SessionClaim, name, address string) (*domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("shop name required", nil)
	}

	user, err := s.users.GetByID(ctx, actor.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if user.ShopID != nil {
		existing, err := s.shops.GetByID(ctx, *user.ShopID)
		if err != nil {
			return nil, err
		}
		if existing.Status != domain.ShopStatusSuspended {
			return nil, apperrors.NewConflict("shop application already exists", nil)
		}
		return s.reapply(ctx, actor, existing)
	}

	shop := &domain.Shop{
		OwnerID: user.ID,
		Name:    name,
		Address: strings.TrimSpace(address),
		Status:  domain.ShopStatusPending,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	if err := s.users.SetShopRef(ctx, user.ID, &shop.ID); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventShopApplied,
		UserID:    user.ID,
		Actor:     events.Actor{UserID: actor.Subject, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.ShopAppliedPayload{ShopID: shop.ID, ShopName: shop.Name},
	})
	return shop, nil
}

// Approve moves a pending shop to active and promotes the owner to
// seller. Admin only.
func (s *ShopService) Approve(ctx context.Context, actor *domain.SessionClaim, shopID string) (*domain.Shop, error) {
	return s.adminTransition(ctx, actor, shopID, domain.ShopStatusActive, domain.RoleSeller)
}

// Suspend rejects a pending shop or suspends an active one; either way
// the owner's role reverts to buyer. Admin only.
func (s *ShopService) Suspend(ctx context.Context, actor *domain.SessionClaim, shopID string) (*domain.Shop, error) {
	return s.adminTransition(ctx, actor, shopID, domain.ShopStatusSuspended, domain.RoleBuyer)
}

// GetForOwner returns the owner's shop.
func (s *ShopService) GetForOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	shop, err := s.shops.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", nil)
		}
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) adminTransition(ctx context.Context, actor *domain.SessionClaim, shopID string, target domain.ShopStatus, ownerRole domain.Role) (*domain.Shop, error) {
	// The route gate already checks this; the state machine enforces it
	// again so it holds for any caller.
	if role, err := domain.ParseRole(string(actor.Role)); err != nil || role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}

	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", nil)
		}
		return nil, err
	}

	if err := validateTransition(shop.Status, target); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, shop.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop owner", nil)
		}
		return nil, err
	}

	oldStatus := shop.Status
	if err := s.shops.UpdateStatus(ctx, shop.ID, target); err != nil {
		return nil, err
	}
	shop.Status = target

	if owner.Role != ownerRole {
		if err := s.users.SetRole(ctx, owner.ID, ownerRole); err != nil {
			return nil, err
		}
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRoleChanged,
			UserID:    owner.ID,
			Actor:     events.Actor{UserID: actor.Subject, Role: actor.Role},
			Timestamp: time.Now(),
			Payload:   events.UserRoleChangedPayload{OldRole: owner.Role, NewRole: ownerRole},
		})
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventShopStatusChanged,
		UserID:    owner.ID,
		Actor:     events.Actor{UserID: actor.Subject, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.ShopStatusChangedPayload{ShopID: shop.ID, OldStatus: oldStatus, NewStatus: target},
	})
	return shop, nil
}

// reapply resets a suspended shop back to pending for its owner. The
// shop row is reused so the unique owner constraint stays intact.
func (s *ShopService) reapply(ctx context.Context, actor *domain.SessionClaim, shop *domain.Shop) (*domain.Shop, error) {
	if err := validateTransition(shop.Status, domain.ShopStatusPending); err != nil {
		return nil, err
	}
	oldStatus := shop.Status
	if err := s.shops.UpdateStatus(ctx, shop.ID, domain.ShopStatusPending); err != nil {
		return nil, err
	}
	shop.Status = domain.ShopStatusPending

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventShopStatusChanged,
		UserID:    shop.OwnerID,
		Actor:     events.Actor{UserID: actor.Subject, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.ShopStatusChangedPayload{ShopID: shop.ID, OldStatus: oldStatus, NewStatus: shop.Status},
	})
	return shop, nil
}

func validateTransition(from, to domain.ShopStatus) error {
	if _, ok := shopTransitions[from][to]; !ok {
		return apperrors.NewConflict(
			fmt.Sprintf("cannot move shop from %s to %s", from, to), nil)
	}
	return nil
}

func (s *ShopService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
