package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// ShopsHandler exposes the shop lifecycle endpoints.
type ShopsHandler struct {
	shops *service.ShopService
}

// NewShopsHandler constructs the handler.
func NewShopsHandler(shops *service.ShopService) *ShopsHandler {
	return &ShopsHandler{shops: shops}
}

// Apply handles POST /shops.
func (h *ShopsHandler) Apply(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	var req dto.ShopApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	shop, err := h.shops.Apply(c.UserContext(), claim, req.Name, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewShopSummary(shop)})
}

// Mine handles GET /shops/mine.
func (h *ShopsHandler) Mine(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	shop, err := h.shops.GetForOwner(c.UserContext(), claim.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopSummary(shop)})
}

// Approve handles POST /shops/:id/approve.
func (h *ShopsHandler) Approve(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	shop, err := h.shops.Approve(c.UserContext(), claim, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopSummary(shop)})
}

// Suspend handles POST /shops/:id/suspend; it covers both rejecting a
// pending application and suspending an active shop.
func (h *ShopsHandler) Suspend(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	shop, err := h.shops.Suspend(c.UserContext(), claim, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopSummary(shop)})
}
