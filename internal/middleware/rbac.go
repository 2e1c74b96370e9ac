package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes. It runs after
// JWT and reads the authenticated admin from the context.
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	allowed := make(map[models.AdminRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		adminValue, exists := c.Get(ContextAdminKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		admin := adminValue.(*models.Admin)

		if _, ok := allowed[admin.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
