package domain

import "time"

// ShopStatus represents lifecycle states for a shop.
type ShopStatus string

const (
	ShopStatusPending   ShopStatus = "pending"
	ShopStatusActive    ShopStatus = "active"
	ShopStatusSuspended ShopStatus = "suspended"
)

// Shop models a seller's storefront. Each shop belongs to exactly one
// user; the owner reference is unique in storage.
type Shop struct {
	ID        string
	OwnerID   string
	Name      string
	Address   string
	Status    ShopStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
