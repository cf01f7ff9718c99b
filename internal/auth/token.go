package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// Token verification failures. The HTTP layer collapses all three into a
// single unauthenticated response; the distinction exists for logging and
// tests only.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// ErrMissingSecret is returned when a TokenManager is constructed without
// a signing secret. Callers must treat this as fatal.
var ErrMissingSecret = errors.New("session signing secret not configured")

// TokenManager issues and verifies HMAC-signed session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a manager for the given secret.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

// Claims describes the JWT payload carrying a session claim snapshot.
type Claims struct {
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	HasShop  bool        `json:"has_shop"`
	ShopID   *string     `json:"shop_id,omitempty"`
	Remember bool        `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding the claim with the given lifetime.
func (tm *TokenManager) Issue(claim domain.SessionClaim, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email:    claim.Email,
		Role:     claim.Role,
		HasShop:  claim.HasShop,
		ShopID:   claim.ShopID,
		Remember: claim.Remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the signature and expiry and returns the embedded
// claim unmodified. The role spelling is normalized at this boundary.
func (tm *TokenManager) Verify(tokenStr string) (*domain.SessionClaim, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	role, err := domain.ParseRole(string(claims.Role))
	if err != nil {
		return nil, ErrTokenMalformed
	}

	claim := &domain.SessionClaim{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Role:     role,
		HasShop:  claims.HasShop,
		ShopID:   claims.ShopID,
		Remember: claims.Remember,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}
