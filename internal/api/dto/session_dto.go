package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// UserSummary is the public view of a user.
type UserSummary struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	HasShop bool        `json:"has_shop"`
	ShopID  *string     `json:"shop_id,omitempty"`
}

// NewUserSummary maps a domain user to its public view.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		HasShop: user.HasShop,
		ShopID:  user.ShopID,
	}
}

// SessionResponse carries the issued token alongside the cookie.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WhoamiResponse is the public view of the current claim. Stale hints
// that the persisted role changed and the client should refresh.
type WhoamiResponse struct {
	Subject string      `json:"subject"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	HasShop bool        `json:"has_shop"`
	ShopID  *string     `json:"shop_id,omitempty"`
	Stale   bool        `json:"stale"`
}
