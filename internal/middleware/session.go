package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thescent/internal/services"
)

// SessionCookie is the name of the session cookie issued at login.
const SessionCookie = "thescent_session"

// Session resolves the session cookie and puts the account id into the gin
// context. It never aborts: public endpoints run fine without a session,
// protected ones are gated by RequireAuth.
func Session(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		session, err := sessions.Resolve(token)
		if err != nil {
			// Stale cookie, treat as anonymous.
			c.Next()
			return
		}
		c.Set("user_id", session.UserID)
		c.Set("session_token", session.Token)
		c.Next()
	}
}

// RequireAuth rejects requests that did not carry a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("user_id"); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Next()
	}
}
