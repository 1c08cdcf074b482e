package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookhub/internal/metrics"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    service.AuthService
	BookService    service.BookService
	ReviewService  service.ReviewService
	UserService    service.UserService
	AuthLimiter    *middleware.RateLimiter
	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	EnableMetrics  bool
	// HealthCheck reports whether the backing stores are reachable.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
	)
	if cfg.EnableMetrics {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorResponder(cfg.Logger),
		middleware.Timeout(cfg.RequestTimeout),
	)

	r.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				cfg.Logger.Warn("health_check_failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(cfg.AuthService)

	authGroup := r.Group("/auth")
	if cfg.AuthLimiter != nil {
		authGroup.Use(cfg.AuthLimiter.Middleware())
	}
	NewAuthHandler(cfg.AuthService).RegisterRoutes(authGroup, requireAuth)

	NewBookHandler(cfg.BookService).RegisterRoutes(r.Group("/books", requireAuth))
	NewReviewHandler(cfg.ReviewService).RegisterRoutes(r.Group("/reviews", requireAuth))
	NewUserHandler(cfg.UserService).RegisterRoutes(r.Group("/users", requireAuth))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found."})
	})

	return r
}
