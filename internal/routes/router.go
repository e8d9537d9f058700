package routes

import (
	"context"
	"net/http"
	"sort"
	"time"

	"drivebuddy-admin/internal/config"
	"drivebuddy-admin/internal/delivery/http/handler"
	"drivebuddy-admin/internal/logger"
	"drivebuddy-admin/internal/middleware"
	"drivebuddy-admin/internal/usecase/driver"
	"drivebuddy-admin/internal/usecase/invitation"
	"drivebuddy-admin/internal/usecase/roster"
	"drivebuddy-admin/internal/usecase/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Services are the use cases exposed over HTTP.
type Services struct {
	Invitations *invitation.Service
	Roster      *roster.Service
	Telemetry   *telemetry.Service
	Drivers     *driver.Service

	// Redis enables the shared rate limiter when set.
	Redis        redis.UniversalClient
	HealthChecks map[string]HealthCheck
}

func SetupRoutes(cfg *config.Config, svc Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if svc.Redis != nil {
		router.Use(middleware.RedisRateLimitMiddleware(svc.Redis, cfg.RateLimit.GeneralBurst))
	} else {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", healthHandler(svc.HealthChecks))

	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.AdminOnly())
		{
			handler.NewInvitationHandler(svc.Invitations).RegisterRoutes(admin)
			handler.NewRosterHandler(svc.Roster).RegisterRoutes(admin)
			handler.NewTelemetryHandler(svc.Telemetry).RegisterRoutes(admin)
			handler.NewDriverHandler(svc.Drivers).RegisterRoutes(admin)
		}
	}

	logger.Info("All routes initialized")
	return router
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := gin.H{}
		healthy := true
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":       "unhealthy",
				"message":      "A dependency is unavailable",
				"dependencies": status,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"message":      "Service is running",
			"dependencies": status,
		})
	}
}
