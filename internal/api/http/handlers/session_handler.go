package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// SessionHandler exposes registration, login, refresh, logout and whoami.
type SessionHandler struct {
	sessions *service.SessionService
	cookies  *auth.CookieWriter
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions *service.SessionService, cookies *auth.CookieWriter) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, session, err := h.sessions.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Write(c, session.Token, false)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":    dto.NewUserSummary(user),
			"session": dto.SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Login handles POST /session.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, session, err := h.sessions.Login(c.UserContext(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}

	h.cookies.Write(c, session.Token, req.Remember)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":    dto.NewUserSummary(user),
			"session": dto.SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Refresh handles POST /session/refresh. It rebuilds the claim from the
// persisted user so an out-of-band role change becomes visible.
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	user, session, err := h.sessions.Refresh(c.UserContext(), claim)
	if err != nil {
		return err
	}

	h.cookies.Write(c, session.Token, session.Claim.Remember)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":    dto.NewUserSummary(user),
			"session": dto.SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Logout handles DELETE /session. Always succeeds, session or not.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if claim, ok := auth.ClaimFromContext(c); ok {
		h.sessions.Logout(c.UserContext(), claim.Subject)
	}
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Whoami handles GET /whoami. A missing session is a valid state and
// yields a null body, never an error.
func (h *SessionHandler) Whoami(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return c.JSON(fiber.Map{"data": nil})
	}

	return c.JSON(fiber.Map{
		"data": dto.WhoamiResponse{
			Subject: claim.Subject,
			Email:   claim.Email,
			Role:    claim.Role,
			HasShop: claim.HasShop,
			ShopID:  claim.ShopID,
			Stale:   h.sessions.IsStale(c.UserContext(), claim.Subject),
		},
	})
}
