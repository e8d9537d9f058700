package middleware

import (
	"net/http"

	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Admin requests are small JSON documents; invitations and driver edits stay
// far below this.
const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware rejects declared bodies over maxSize and caps
// reads of undeclared ones.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		}
		c.Next()
	}
}
