package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/nextiwant/wishlist-backend/internal/database"
	"github.com/nextiwant/wishlist-backend/internal/handlers"
	"github.com/nextiwant/wishlist-backend/internal/logging"
	"github.com/nextiwant/wishlist-backend/internal/metrics"
	"github.com/nextiwant/wishlist-backend/internal/repository"
	"github.com/nextiwant/wishlist-backend/internal/routes"
	"github.com/nextiwant/wishlist-backend/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	// ERROR+ records also go to system_logs
	pgLogHandler := logging.NewPGHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewConsoleHandler(os.Stdout, cfg.AppEnv, cfg.LogLevel),
		pgLogHandler,
	)))
	defer pgLogHandler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logging.StartCleanup(ctx, db, cfg.LogRetention)

	// Redis is optional; without it the rate limiter keeps counters in memory
	var (
		redisClient *redis.Client
		limitStore  fiber.Storage
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, using in-memory rate limits", "error", err)
			redisClient = nil
		} else {
			limitStore = database.NewRedisStorage(redisClient, "wishlist:ratelimit:")
			defer redisClient.Close()
		}
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	store := repository.NewGormStore(db)
	tokens := services.NewJWTTokenService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	authService := services.NewAuthService(store, services.NewBcryptHasher(), tokens, cfg.JWTRefreshExpiry)
	wishlistService := services.NewWishlistService(store)
	shareService := services.NewShareService(store, cfg.ShareDefaultTTL)
	commentService := services.NewCommentService(store, services.NewModerationFilter())
	profileService := services.NewProfileService(store)

	m := metrics.New()
	app := routes.NewApp(cfg, m)
	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(db, redisClient),
		Profile:  handlers.NewProfileHandler(profileService),
		Wishlist: handlers.NewWishlistHandler(wishlistService),
		Public:   handlers.NewPublicHandler(shareService, commentService, m),
	}, limitStore)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return err
	case <-quit:
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
