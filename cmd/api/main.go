package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	tokens, err := auth.NewTokenManager(cfg.Auth.SessionSecret)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	shopRepo := repository.NewShopRepository(pool)
	sessionState := repository.NewSessionStateStore(redis.Client, cfg.Auth.CookieMaxAge())

	dispatcher := events.NewInMemoryDispatcher()

	sessionService := service.NewSessionService(cfg.Auth, service.SessionDependencies{
		UserRepo:     userRepo,
		SessionState: sessionState,
		Tokens:       tokens,
	})
	shopService := service.NewShopService(service.ShopDependencies{
		ShopRepo:   shopRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	adminService := service.NewAdminService(userRepo, shopRepo)
	notificationService := service.NewNotificationService(dispatcher, sessionState, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	sweeper := worker.NewStatusSweeper(shopRepo, sessionState, logger, cfg.Notification.SweepInterval())
	go sweeper.Run(ctx)

	cookies := auth.NewCookieWriter(cfg.Auth.CookieName, cfg.App.IsProduction(), cfg.Auth.CookieMaxAge(), cfg.Auth.RememberMaxAge())
	authMiddleware := auth.NewMiddleware(tokens, cfg.Auth.CookieName)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Session:        handlers.NewSessionHandler(sessionService, cookies),
		Shops:          handlers.NewShopsHandler(shopService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
