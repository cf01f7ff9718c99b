package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
)

func TestDeleteUser_SelfActionForbidden(t *testing.T) {
	users := newFakeUserRepo()
	users.seed(&domain.User{ID: "a1", Role: domain.RoleAdmin, Email: "admin@example.com"})
	svc := service.NewAdminService(users, newFakeShopRepo())

	err := svc.DeleteUser(context.Background(), &domain.SessionClaim{Subject: "a1", Role: domain.RoleAdmin}, "a1")
	assertCode(t, err, "SELF_ACTION_FORBIDDEN")

	// Nothing was deleted.
	_, err = users.GetByID(context.Background(), "a1")
	require.NoError(t, err)
}

func TestDeleteUser_RemovesTarget(t *testing.T) {
	users := newFakeUserRepo()
	users.seed(&domain.User{ID: "a1", Role: domain.RoleAdmin, Email: "admin@example.com"})
	users.seed(&domain.User{ID: "u1", Role: domain.RoleBuyer, Email: "buyer@example.com"})
	svc := service.NewAdminService(users, newFakeShopRepo())

	err := svc.DeleteUser(context.Background(), &domain.SessionClaim{Subject: "a1", Role: domain.RoleAdmin}, "u1")
	require.NoError(t, err)

	_, err = users.GetByID(context.Background(), "u1")
	assert.Error(t, err)
}

func TestDeleteUser_UnknownTarget(t *testing.T) {
	users := newFakeUserRepo()
	users.seed(&domain.User{ID: "a1", Role: domain.RoleAdmin, Email: "admin@example.com"})
	svc := service.NewAdminService(users, newFakeShopRepo())

	err := svc.DeleteUser(context.Background(), &domain.SessionClaim{Subject: "a1", Role: domain.RoleAdmin}, "ghost")
	assertCode(t, err, "NOT_FOUND")
}

func TestStats_Counts(t *testing.T) {
	users := newFakeUserRepo()
	users.seed(&domain.User{ID: "u1", Role: domain.RoleBuyer, Email: "b@example.com"})
	users.seed(&domain.User{ID: "u2", Role: domain.RoleSeller, Email: "s@example.com"})
	shops := newFakeShopRepo()
	require.NoError(t, shops.Create(context.Background(), &domain.Shop{OwnerID: "u2", Name: "Toko", Status: domain.ShopStatusActive}))

	svc := service.NewAdminService(users, shops)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.ShopsByStatus[domain.ShopStatusActive])
}
