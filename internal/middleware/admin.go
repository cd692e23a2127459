package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware lets through callers whose identity carries the admin
// role. The role was resolved at login, so no lookup happens here.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c) // Get identity from context
		// Check if identity exists in context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user role is admin
		if !identity.IsAdmin() {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
