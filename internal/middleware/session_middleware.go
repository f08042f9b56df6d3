package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader identifies the storefront session owning the cart.
const SessionHeader = "X-Session-Id"

// SessionMiddleware reads the session id from the request header, assigning
// a fresh one when absent, and echoes it back so the client can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("session_id", id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the session id injected by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
