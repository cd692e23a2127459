package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"car_rental/internal/domain" // Identity and error sentinels
	"car_rental/internal/utils"  // JWT and session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the session middleware
const (
	ContextIdentityKey = "identity"  // domain.Identity of the caller
	ContextSessionKey  = "sessionID" // Redis session id of the caller
)

// SessionAuthMiddleware resolves the caller's session from the session cookie,
// or from a Bearer token when no cookie is sent. The token must verify and its
// session must still exist in the store.
func SessionAuthMiddleware(secret, cookieName string, sessions *utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c, cookieName) // Cookie first, then Authorization header
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Verify signature and expiry
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), claims.ID) // Session must still be live
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			Logger(c).WithError(err).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
			return
		}
		c.Set(ContextIdentityKey, sess.Identity) // Store identity in context
		c.Set(ContextSessionKey, sess.ID)        // Store session id for logout
		c.Next()                                 // Proceed to the next handler
	}
}

// CurrentIdentity returns the identity resolved by SessionAuthMiddleware
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(ContextIdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
