package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP status
// codes. Clients can tell "log in again" (401) from "you lack permission"
// (403) from "fix your request" (400).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrTokenExpired):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrUnauthorized):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrAlreadyPaid):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrNotReady):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrUnavailable):
		utils.RespondError(c, http.StatusServiceUnavailable, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
