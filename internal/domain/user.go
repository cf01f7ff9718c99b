package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates marketplace account roles.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole normalizes a stored or user-supplied role spelling into the
// canonical lowercase form. Historical data mixes "ADMIN" and "admin", so
// this is the single normalization point for role strings.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleSeller:
		return RoleSeller, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the known canonical values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is the domain model for marketplace accounts.
//
// Invariants: HasShop is true exactly when ShopID is set; Role is seller
// only while the referenced shop is active. A user can hold HasShop=true
// with Role=buyer while a shop application is still pending.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	HasShop      bool
	ShopID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
