package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "session_id"
	ClientCookie  = "client_id"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// SessionMiddleware assigns every visitor two identities: a session id
// scoping the ephemeral storage tier and a long-lived client id scoping the
// durable tier. Both are plain cookies; there is no authentication.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, 0, "/", "", false, true)
		}

		clientID, err := c.Cookie(ClientCookie)
		if err != nil || clientID == "" {
			clientID = uuid.NewString()
			c.SetCookie(ClientCookie, clientID, clientCookieMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Set("client_id", clientID)
		c.Next()
	}
}
