package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"drivebuddy-admin/internal/logger"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	rateLimitKeyPrefix = "drivebuddy:ratelimit:"
	rateLimitWindow    = time.Second
)

// RedisRateLimitMiddleware counts requests per client IP in fixed one-second
// windows shared by every instance. Redis failures let the request through.
func RedisRateLimitMiddleware(rdb redis.UniversalClient, limitPerSec int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := rateLimitKeyPrefix + ip
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("Rate limit store unavailable",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow)
		}

		if count > int64(limitPerSec) {
			logger.Warn("Rate limit exceeded",
				zap.String("request_id", GetRequestID(c)),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", "1")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limitPerSec))
		c.Next()
	}
}
