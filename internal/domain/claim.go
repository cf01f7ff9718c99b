package domain

import "time"

// SessionClaim is the decoded payload of a session token. Role, HasShop
// and ShopID are a snapshot of the user record at issue time, never the
// source of truth; they go stale when an admin changes the persisted role
// and are reconciled by an explicit session refresh.
type SessionClaim struct {
	Subject   string
	Email     string
	Role      Role
	HasShop   bool
	ShopID    *string
	Remember  bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewSessionClaim snapshots the given user into a claim.
func NewSessionClaim(user *User) SessionClaim {
	return SessionClaim{
		Subject: user.ID,
		Email:   user.Email,
		Role:    user.Role,
		HasShop: user.HasShop,
		ShopID:  user.ShopID,
	}
}
