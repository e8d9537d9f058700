package middleware

import (
	"net/http"
	"strings"

	"drivebuddy-admin/internal/config"
	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// AuthMiddleware validates the bearer token and stores the resulting session
// on both the gin context and the request context. The raw token is kept so
// backend calls can be made on the admin's behalf.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		token := parts[1]

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			logger.WithRequestID(GetRequestID(c)).Debug("Rejected token", zap.Error(err))
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		sess := session.Session{
			AdminID:   claims.AdminID(),
			CompanyID: claims.CompanyID,
			Name:      claims.Name,
			Email:     claims.Email,
			Role:      claims.Role,
			Token:     token,
		}

		c.Set(sessionKey, sess)
		c.Set("role", sess.Role)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))

		c.Next()
	}
}

// GetSession returns the session set by AuthMiddleware.
func GetSession(c *gin.Context) (session.Session, bool) {
	if v, exists := c.Get(sessionKey); exists {
		if sess, ok := v.(session.Session); ok {
			return sess, true
		}
	}
	return session.FromContext(c.Request.Context())
}
