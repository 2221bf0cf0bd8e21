package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/profile-service/internal/api/http"
	"github.com/spec-kit/profile-service/internal/api/http/handlers"
	"github.com/spec-kit/profile-service/internal/auth"
	"github.com/spec-kit/profile-service/internal/config"
	"github.com/spec-kit/profile-service/internal/events"
	"github.com/spec-kit/profile-service/internal/observability"
	"github.com/spec-kit/profile-service/internal/persistence"
	"github.com/spec-kit/profile-service/internal/repository"
	"github.com/spec-kit/profile-service/internal/service"
	"github.com/spec-kit/profile-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	orgRepo := repository.NewOrganizationRepository(pool)
	appRepo := repository.NewApplicationRepository(pool)
	stateRepo := repository.NewSetupStateRepository(redis.Client, cfg.Setup.SessionTTL())
	codeRepo := repository.NewVerificationCodeRepository(redis.Client)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	setupService := service.NewSetupService(cfg.Setup, service.SetupDependencies{
		UserRepo:       userRepo,
		SetupStateRepo: stateRepo,
		Dispatcher:     dispatcher,
	}, logger)
	verificationService := service.NewVerificationService(cfg.Verification, service.VerificationDependencies{
		UserRepo:       userRepo,
		SetupStateRepo: stateRepo,
		CodeRepo:       codeRepo,
		Dispatcher:     dispatcher,
	}, logger)
	orgService := service.NewOrganizationService(service.OrganizationDependencies{
		OrganizationRepo: orgRepo,
		ApplicationRepo:  appRepo,
		Dispatcher:       dispatcher,
	}, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Users:          handlers.NewUsersHandler(authService),
		Setup:          handlers.NewSetupHandler(setupService, verificationService),
		Organizations:  handlers.NewOrganizationsHandler(orgService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
