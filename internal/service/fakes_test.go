package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.NewConflict("email already registered", nil)
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) SetShopRef(_ context.Context, userID string, shopID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ShopID = shopID
	user.HasShop = shopID != nil
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, userID string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// seed inserts a user directly, bypassing Create.
func (r *fakeUserRepo) seed(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
}

// fakeShopRepo is an in-memory ShopRepository with the same uniqueness
// semantics as the Postgres owner index.
type fakeShopRepo struct {
	mu    sync.Mutex
	seq   int
	shops map[string]*domain.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[string]*domain.Shop)}
}

func (r *fakeShopRepo) Create(_ context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.shops {
		if existing.OwnerID == shop.OwnerID {
			return apperrors.NewConflict("shop application already exists", nil)
		}
	}
	r.seq++
	shop.ID = fmt.Sprintf("shop-%d", r.seq)
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = shop.CreatedAt
	clone := *shop
	r.shops[shop.ID] = &clone
	return nil
}

func (r *fakeShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *shop
	return &clone, nil
}

func (r *fakeShopRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, shop := range r.shops {
		if shop.OwnerID == ownerID {
			clone := *shop
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeShopRepo) UpdateStatus(_ context.Context, id string, status domain.ShopStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[id]
	if !ok {
		return pgx.ErrNoRows
	}
	shop.Status = status
	shop.UpdatedAt = time.Now()
	return nil
}

func (r *fakeShopRepo) CountByStatus(_ context.Context) (map[domain.ShopStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.ShopStatus]int64)
	for _, shop := range r.shops {
		counts[shop.Status]++
	}
	return counts, nil
}

func (r *fakeShopRepo) ListChangedSince(_ context.Context, since time.Time) ([]*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Shop
	for _, shop := range r.shops {
		if !shop.UpdatedAt.Before(since) {
			clone := *shop
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeSessionState is an in-memory SessionStateStore.
type fakeSessionState struct {
	mu    sync.Mutex
	stale map[string]bool
}

func newFakeSessionState() *fakeSessionState {
	return &fakeSessionState{stale: make(map[string]bool)}
}

func (s *fakeSessionState) MarkStale(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale[userID] = true
	return nil
}

func (s *fakeSessionState) IsStale(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale[userID], nil
}

func (s *fakeSessionState) ClearStale(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stale, userID)
	return nil
}
