package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Shops          *handlers.ShopsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Session.Register)
	app.Post("/session", cfg.Session.Login)
	app.Post("/session/refresh", cfg.AuthMiddleware.Handle, cfg.Session.Refresh)
	app.Delete("/session", cfg.AuthMiddleware.Optional, cfg.Session.Logout)
	app.Get("/whoami", cfg.AuthMiddleware.Optional, cfg.Session.Whoami)

	shops := app.Group("/shops", cfg.AuthMiddleware.Handle)
	shops.Post("/", auth.RequireRole(domain.RoleBuyer), cfg.Shops.Apply)
	shops.Get("/mine", auth.RequireAuthenticated(), cfg.Shops.Mine)
	shops.Post("/:id/approve", auth.RequireRole(domain.RoleAdmin), cfg.Shops.Approve)
	shops.Post("/:id/suspend", auth.RequireRole(domain.RoleAdmin), cfg.Shops.Suspend)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/stats", cfg.Admin.Stats)
}
