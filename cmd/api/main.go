// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/talenthub/internal/admin"
	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/auth"
	"github.com/carterperez-dev/talenthub/internal/cascade"
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/config"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/health"
	"github.com/carterperez-dev/talenthub/internal/middleware"
	"github.com/carterperez-dev/talenthub/internal/navigation"
	"github.com/carterperez-dev/talenthub/internal/profile"
	"github.com/carterperez-dev/talenthub/internal/quota"
	"github.com/carterperez-dev/talenthub/internal/server"
	"github.com/carterperez-dev/talenthub/internal/user"
	"github.com/carterperez-dev/talenthub/migrations"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrate := flag.Bool("migrate", false, "apply SQL migrations before serving")
	flag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, migrate bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if migrate {
		if err := core.ApplyMigrations(ctx, db.DB, migrations.FS); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	verifier, err := auth.NewVerifier(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token verifier initialized",
		"algorithm", "ES256",
		"issuer", cfg.JWT.Issuer,
		"key_id", verifier.GetKeyID(),
	)

	auditRepo := audit.NewRepository(db.DB)
	userRepo := user.NewRepository(db.DB)
	roleStore := user.NewRoleStore(db.DB, userRepo, auditRepo)
	userSvc := user.NewService(userRepo, roleStore, auditRepo)
	userHandler := user.NewHandler(userSvc)

	companyRepo := company.NewRepository(db.DB)
	companySvc := company.NewService(
		companyRepo,
		roleStore,
		company.NewAcceptor(db.DB, roleStore),
	)

	cascadeEngine := cascade.NewEngine(companyRepo, roleStore, logger)
	adminHandler := admin.NewHandler(cascadeEngine, companySvc)

	limits := quota.NewCachedLimits(
		quota.NewSettingsRepository(db.DB),
		redis.Client,
		cfg.Entitlements.Quota.LimitCacheTTL,
		logger,
	)
	ledger := quota.NewLedger(
		limits,
		quota.NewApplicationRepository(db.DB),
		companyRepo,
		logger,
	)
	quotaHandler := quota.NewHandler(ledger, companyRepo)

	profileSvc := profile.NewService(
		profile.NewRepository(db.DB),
		profile.ThresholdsFromConfig(cfg.Entitlements.Profile),
	)
	profileHandler := profile.NewHandler(profileSvc)

	navigationHandler := navigation.NewHandler(
		profileSvc,
		cfg.Entitlements.Navigation.ProtectedPrefixes,
		cfg.Entitlements.Navigation.RedirectDelay,
	)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", verifier.GetJWKSHandler())

	authenticator := middleware.Authenticator(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Use(middleware.TieredRateLimiter(redis.Client, middleware.DefaultTiers))

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
		quotaHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r, authenticator)
		navigationHandler.RegisterRoutes(r, optionalAuth)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
