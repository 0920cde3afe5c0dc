package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
)

const sessionKey = "session"

// AuthMiddleware resolves the X-Token header to a session and stores it in
// the request context. Validation (and lazy expiry) happens in the session
// store; handlers just read the snapshot.
func AuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Token")
		if token == "" {
			token = c.Query("token")
		}

		session, err := sessions.Validate(token)
		if err != nil {
			respondAuthError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session set by AuthMiddleware.
func SessionFromContext(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	session, ok := v.(models.Session)
	return session, ok
}
