package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Headers applies the permissive CORS contract shared by both deployment
// shapes. With no configured origins every origin is allowed.
func Headers(w http.ResponseWriter, origin string, allowedOrigins []string) {
	allowAll := len(allowedOrigins) == 0

	if origin != "" {
		if allowAll || hasOrigin(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
	} else if allowAll {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}

	w.Header().Set("Vary", "Origin")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, X-Request-ID")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Max-Age", "600")
}

// New returns CORS middleware for the gin deployment shape; OPTIONS
// preflights are answered with an empty success.
func New(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		Headers(c.Writer, c.GetHeader("Origin"), allowedOrigins)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func hasOrigin(allowedOrigins []string, origin string) bool {
	origin = strings.TrimRight(origin, "/")
	for _, allowed := range allowedOrigins {
		if strings.TrimRight(allowed, "/") == origin {
			return true
		}
	}
	return false
}
