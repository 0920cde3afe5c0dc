package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// RequireRole gates a route group on the session's role snapshot.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			respondAuthError(c, services.ErrUnauthorized)
			c.Abort()
			return
		}
		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, services.ErrForbidden)
		c.Abort()
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		utils.RespondError(c, http.StatusUnauthorized, services.ErrTokenExpired)
	case errors.Is(err, services.ErrUnavailable):
		utils.RespondError(c, http.StatusServiceUnavailable, services.ErrUnavailable)
	default:
		utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthorized)
	}
}
