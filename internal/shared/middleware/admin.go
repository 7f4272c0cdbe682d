package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
)

// AdminMiddleware gates back-office routes; requires AuthMiddleware first.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRole)
		if !exists {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != "ADMIN" {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
