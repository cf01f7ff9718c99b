package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ShopApplyRequest payload for shop applications.
type ShopApplyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ShopSummary is the public view of a shop.
type ShopSummary struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	Status    domain.ShopStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewShopSummary maps a domain shop to its public view.
func NewShopSummary(shop *domain.Shop) ShopSummary {
	return ShopSummary{
		ID:        shop.ID,
		OwnerID:   shop.OwnerID,
		Name:      shop.Name,
		Address:   shop.Address,
		Status:    shop.Status,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}
