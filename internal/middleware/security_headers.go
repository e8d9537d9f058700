package middleware

import "github.com/gin-gonic/gin"

// Roster and invitation payloads carry driver contact details, so nothing
// the admin API returns may be cached or framed.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"Cache-Control":           "no-store",
}

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		for k, v := range securityHeaders {
			headers.Set(k, v)
		}
		c.Next()
	}
}
