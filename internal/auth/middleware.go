package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

const contextKeyAccountID = "account_id"

// AccountIDFromContext returns the current account ID set by RequireSession.
// Empty if not set.
func AccountIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyAccountID)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// RequireSession returns a middleware that checks for a valid session cookie
// and sets the current account ID in context. If missing or invalid, responds
// with 401.
func RequireSession(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		accountID, ok := sessions.GetAccountID(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set(contextKeyAccountID, accountID)
		c.Next()
	}
}
