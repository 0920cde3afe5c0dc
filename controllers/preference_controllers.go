package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/middlewares"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type PreferenceController struct {
	Recs *services.RecommendationService
}

func NewPreferenceController(recs *services.RecommendationService) *PreferenceController {
	return &PreferenceController{Recs: recs}
}

// GetPreferences -> the caller's saved taste settings (defaults if none).
func (pc *PreferenceController) GetPreferences(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	pref, err := pc.Recs.GetPreferences(session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Preferences", pref)
}

// SavePreferences -> upsert the caller's taste settings.
func (pc *PreferenceController) SavePreferences(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	var req struct {
		VegOnly          bool    `json:"veg_only"`
		FavoriteCategory *string `json:"favorite_category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	favorite := ""
	if req.FavoriteCategory != nil {
		favorite = *req.FavoriteCategory
	}

	pref, err := pc.Recs.SavePreferences(session.UserID, req.VegOnly, favorite)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Preferences saved", pref)
}

// GetRecommendations -> read-side catalog ranking for the caller.
func (pc *PreferenceController) GetRecommendations(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	items, err := pc.Recs.Recommend(session, 5)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recommendations", gin.H{"items": items})
}
