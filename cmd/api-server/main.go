package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookhub/database"
	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/handler"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/session"
	"bookhub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	logger.Info("redis_connected", "addr", cfg.RedisAddr())

	assets, err := newAssetStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	maxUpload, err := cfg.UploadMaxBytes()
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, session.NewRedisRevoker(redisClient), cfg, logger)
	bookService := service.NewBookService(bookRepo, reviewRepo, assets, service.BookOptions{
		DefaultCoverURL: cfg.DefaultCoverURL,
		MaxUploadBytes:  maxUpload,
	}, logger)
	reviewService := service.NewReviewService(reviewRepo, bookRepo, logger)
	userService := service.NewUserService(userRepo, reviewRepo, logger)

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	limiter.StartCleanup(ctx.Done(), time.Minute)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.RouterConfig{
		Logger:         logger,
		AuthService:    authService,
		BookService:    bookService,
		ReviewService:  reviewService,
		UserService:    userService,
		AuthLimiter:    limiter,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		MaxUploadBytes: maxUpload,
		EnableMetrics:  cfg.PrometheusEnabled,
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func newRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// newAssetStore uses MinIO when an endpoint is configured, otherwise an in-memory store.
func newAssetStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.AssetStore, error) {
	if cfg.MinioEndpoint == "" {
		logger.Warn("asset_store_in_memory", "reason", "MINIO_ENDPOINT not set")
		return storage.NewMemoryStore(cfg.AssetPublicURL), nil
	}
	store, err := storage.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.MinioUseSSL, cfg.AssetPublicURL)
	if err != nil {
		return nil, err
	}
	logger.Info("asset_store_connected", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
	return store, nil
}
