package middleware

import (
	"net/http"

	"afiliasi/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired guards the admin route group. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
