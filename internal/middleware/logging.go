package middleware

import (
	"time"

	"drivebuddy-admin/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware writes one line per completed request. Authenticated
// requests also carry the acting company and admin.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("status_code", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if sess, ok := GetSession(c); ok {
			fields = append(fields,
				zap.String("company_id", sess.CompanyID),
				zap.String("admin_id", sess.AdminID),
			)
		}
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			fields = append(fields, zap.String("error", msg))
		}

		log := logger.WithRequestID(GetRequestID(c))
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Request completed with server error", fields...)
		case status >= 400:
			log.Warn("Request completed with client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
