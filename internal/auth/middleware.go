package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const claimKey = "session_claim"

// Middleware verifies session tokens and exposes the claim to handlers.
// The claim is not re-checked against the database on each request;
// staleness is reconciled by an explicit refresh.
type Middleware struct {
	tokens     *TokenManager
	cookieName string
}

// NewMiddleware constructs middleware reading tokens from the named
// cookie or a bearer header.
func NewMiddleware(tokens *TokenManager, cookieName string) *Middleware {
	return &Middleware{tokens: tokens, cookieName: cookieName}
}

// Handle enforces authentication for protected routes. Every token-level
// failure surfaces as the same unauthenticated error.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := m.extractToken(c)
	if !ok {
		return apperrors.NewUnauthenticated("missing session")
	}

	claim, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid session")
	}

	c.Locals(claimKey, claim)
	return c.Next()
}

// Optional verifies a token when present but proceeds unauthenticated
// otherwise. Used by routes where a missing session is a valid state.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if token, ok := m.extractToken(c); ok {
		if claim, err := m.tokens.Verify(token); err == nil {
			c.Locals(claimKey, claim)
		}
	}
	return c.Next()
}

// extractToken reads the session cookie first, then the Authorization
// header with a case-insensitive Bearer scheme.
func (m *Middleware) extractToken(c *fiber.Ctx) (string, bool) {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie, true
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// ClaimFromContext retrieves the authenticated claim.
func ClaimFromContext(c *fiber.Ctx) (*domain.SessionClaim, bool) {
	val := c.Locals(claimKey)
	if val == nil {
		return nil, false
	}
	claim, ok := val.(*domain.SessionClaim)
	return claim, ok
}
