package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/database"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/routes"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.AttachDatabase(db, cfg.AppEnv)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention, cleanupDone)

	// Services
	issuer, err := services.NewTokenIssuerFromConfig(cfg)
	if err != nil {
		slog.Error("token issuer setup failed", "error", err)
		os.Exit(1)
	}
	stores := repository.NewStores(db)
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	authService := services.NewAuthService(
		stores,
		hasher,
		services.NewCredentialAuthenticator(stores.Credentials, hasher),
		issuer,
		services.NewAddressClient(cfg.AddressServiceURL, cfg.AddressServiceTimeout),
	)
	logoutService := services.NewLogoutService(stores.Tokens)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, routes.Handlers{
		User:   handlers.NewUserHandler(authService, logoutService),
		Auth:   handlers.NewAuthHandler(issuer, stores.Tokens),
		Health: handlers.NewHealthHandler(db),
	}, issuer, stores.Tokens, routes.LimiterStorage(cfg.RedisURL))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "jwt_alg", issuer.Algorithm())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
