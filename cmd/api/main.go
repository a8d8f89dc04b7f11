package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/praceando/event-platform/internal/api/http"
	"github.com/praceando/event-platform/internal/api/http/handlers"
	"github.com/praceando/event-platform/internal/auth"
	"github.com/praceando/event-platform/internal/config"
	"github.com/praceando/event-platform/internal/domain"
	"github.com/praceando/event-platform/internal/events"
	"github.com/praceando/event-platform/internal/observability"
	"github.com/praceando/event-platform/internal/persistence"
	"github.com/praceando/event-platform/internal/rate"
	"github.com/praceando/event-platform/internal/repository"
	"github.com/praceando/event-platform/internal/service"
	"github.com/praceando/event-platform/internal/worker"
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

	userRepo := repository.NewUserRepository(pg.PoolHandle())

	roleRepo := repository.NewRoleRepository(pg.PoolHandle())
	if err := verifyRoleSeed(ctx, roleRepo); err != nil {
		logger.Fatal("role table incomplete", zap.Error(err))
	}

	dispatcher := events.NewMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})

	policy := auth.MustPolicy(auth.DefaultRules())
	gateway := auth.NewGateway(policy, authService.TokenManager(), userRepo, dispatcher, logger)

	loginLimiter := rate.NewRedisLimiter(redis.Client, "login:", cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, loginLimiter, logger),
		Gateway: gateway,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// verifyRoleSeed refuses startup when any of the access roles the policy
// table references is missing from the database.
func verifyRoleSeed(ctx context.Context, roles repository.RoleRepository) error {
	seeded, err := roles.List(ctx)
	if err != nil {
		return err
	}
	present := make(map[domain.RoleName]struct{}, len(seeded))
	for _, role := range seeded {
		present[role.Name] = struct{}{}
	}
	for _, name := range domain.AllRoles() {
		if _, ok := present[name]; !ok {
			return fmt.Errorf("role %s not seeded", name)
		}
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
