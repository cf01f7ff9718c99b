package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ShopRepository defines persistence access for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Shop, error)
	UpdateStatus(ctx context.Context, id string, status domain.ShopStatus) error
	CountByStatus(ctx context.Context) (map[domain.ShopStatus]int64, error)
	ListChangedSince(ctx context.Context, since time.Time) ([]*domain.Shop, error)
}

type shopRepository struct {
	pool *pgxpool.Pool
}

// NewShopRepository returns a Postgres-backed implementation.
func NewShopRepository(pool *pgxpool.Pool) ShopRepository {
	return &shopRepository{pool: pool}
}

const shopColumns = `id, owner_id, name, address, status, created_at, updated_at`

// Create inserts a pending shop. The unique index on owner_id resolves
// racing duplicate applications: the loser gets a conflict.
func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (owner_id, name, address, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		shop.OwnerID,
		shop.Name,
		shop.Address,
		shop.Status,
	).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.NewConflict("shop application already exists", nil)
	}
	return err
}

func (r *shopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	const query = `SELECT ` + shopColumns + ` FROM shops WHERE id=$1`
	return r.scanShop(r.pool.QueryRow(ctx, query, id))
}

func (r *shopRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	const query = `SELECT ` + shopColumns + ` FROM shops WHERE owner_id=$1`
	return r.scanShop(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *shopRepository) UpdateStatus(ctx context.Context, id string, status domain.ShopStatus) error {
	const query = `UPDATE shops SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shopRepository) CountByStatus(ctx context.Context) (map[domain.ShopStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM shops GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ShopStatus]int64)
	for rows.Next() {
		var status domain.ShopStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *shopRepository) ListChangedSince(ctx context.Context, since time.Time) ([]*domain.Shop, error) {
	const query = `SELECT ` + shopColumns + ` FROM shops WHERE updated_at >= $1 ORDER BY updated_at`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*domain.Shop
	for rows.Next() {
		shop, err := r.scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

func (r *shopRepository) scanShop(row pgx.Row) (*domain.Shop, error) {
	var shop domain.Shop
	if err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Address,
		&shop.Status,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shop, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
