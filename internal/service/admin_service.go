package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// StatsSummary aggregates counts for the admin dashboard.
type StatsSummary struct {
	Users         int64                       `json:"users"`
	ShopsByStatus map[domain.ShopStatus]int64 `json:"shops_by_status"`
}

// AdminService covers admin-only user management and stats.
type AdminService struct {
	users repository.UserRepository
	shops repository.ShopRepository
}

// NewAdminService constructs the service.
func NewAdminService(users repository.UserRepository, shops repository.ShopRepository) *AdminService {
	return &AdminService{users: users, shops: shops}
}

// DeleteUser removes a user record. Admins may not delete their own
// account through this path.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.SessionClaim, targetID string) error {
	if actor.Subject == targetID {
		return apperrors.NewSelfActionForbidden("cannot delete own account")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

// Stats returns marketplace-wide counts.
func (s *AdminService) Stats(ctx context.Context) (*StatsSummary, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	shops, err := s.shops.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{Users: users, ShopsByStatus: shops}, nil
}
