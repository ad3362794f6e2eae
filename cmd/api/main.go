// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/carterperez-dev/metro-bond/internal/admin"
	"github.com/carterperez-dev/metro-bond/internal/auth"
	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/config"
	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/favorite"
	"github.com/carterperez-dev/metro-bond/internal/health"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
	"github.com/carterperez-dev/metro-bond/internal/payment"
	"github.com/carterperez-dev/metro-bond/internal/premium"
	"github.com/carterperez-dev/metro-bond/internal/review"
	"github.com/carterperez-dev/metro-bond/internal/server"
	"github.com/carterperez-dev/metro-bond/internal/user"
)

const (
	drainDelay      = 5 * time.Second
	sentryFlush     = 2 * time.Second
	intentPerMinute = 10
	intentBurst     = 3
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
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

	reporter, err := core.NewSentry(cfg.Sentry, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize sentry", "error", err)
		reporter = &core.Sentry{}
	}
	defer reporter.Flush(sentryFlush)
	logger.Info("error reporting configured", "sentry", reporter.Enabled())

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

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"expire", cfg.JWT.Expire,
	)

	userSvc := user.NewService(user.NewRepository(db.DB))
	biodataSvc := biodata.NewService(biodata.NewRepository(db.DB))
	paymentSvc := payment.NewService(
		payment.NewRepository(db.DB),
		payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency),
		cfg.Stripe.MinAmountMinor,
	)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Stats:      admin.NewStatsService(userSvc, biodataSvc, paymentSvc),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recover)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: middleware.BypassHealthChecks,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	intentLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(intentPerMinute, intentBurst),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	})

	authenticator := middleware.Authenticator(tokens)
	adminOnly := middleware.AdminGate(userSvc)

	healthHandler.RegisterRoutes(router)
	auth.NewHandler(tokens).RegisterRoutes(router)
	user.NewHandler(userSvc).RegisterRoutes(router, authenticator, adminOnly)
	review.NewHandler(review.NewRepository(db.DB)).RegisterRoutes(router)
	biodata.NewHandler(biodataSvc).RegisterRoutes(router, authenticator)
	favorite.NewHandler(favorite.NewRepository(db.DB)).RegisterRoutes(router, authenticator)
	payment.NewHandler(paymentSvc).RegisterRoutes(router, payment.Guards{
		Authenticator: authenticator,
		AdminOnly:     adminOnly,
		IntentLimiter: intentLimiter.Handler,
	})
	premium.NewHandler(premium.NewRepository(db.DB)).RegisterRoutes(router, authenticator, adminOnly)
	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	healthHandler.SetReady(true)

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

// setupLogger writes to stdout and, when log.file is set, also to a
// rotated file.
func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}
