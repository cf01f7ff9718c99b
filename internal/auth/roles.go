package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RequireRole ensures the caller's claim holds one of the allowed roles.
// Role spellings are normalized before comparison to tolerate mixed-case
// values in older tokens. The check is a pure decision over the claim,
// with no side effects.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claim, ok := ClaimFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("missing session")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		role, err := domain.ParseRole(string(claim.Role))
		if err != nil {
			return apperrors.NewForbidden("unknown role")
		}
		if _, exists := allowedSet[role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a valid claim is present, any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ClaimFromContext(c); !ok {
			return apperrors.NewUnauthenticated("missing session")
		}
		return c.Next()
	}
}
