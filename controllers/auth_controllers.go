package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type AuthController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewAuthController(db *gorm.DB, sessions *services.SessionService) *AuthController {
	return &AuthController{DB: db, Sessions: sessions}
}

// Login -> issue a session token bound to device + table.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id"`
		UserID   string `json:"user_id"`
		Password string `json:"password"`
		TableID  string `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := ac.Sessions.Login(req.DeviceID, req.UserID, req.Password, req.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":      session.Token,
		"role":       session.Role,
		"specialty":  session.Specialty,
		"expires_at": session.ExpiresAt,
	})
}

// Register -> create a user. Staff accounts (with specialty) can only be
// created by an admin session; customer and admin signups are open, as the
// original clients expect.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		UserID    string  `json:"user_id"`
		Password  string  `json:"password"`
		Role      string  `json:"role"`
		Specialty *string `json:"specialty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" || req.Password == "" {
		respondServiceError(c, errors.Join(services.ErrInvalidInput, errors.New("user_id and password required")))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	switch role {
	case models.RoleCustomer, models.RoleAdmin:
	case models.RoleStaff:
		if _, err := ac.Sessions.RequireRole(c.GetHeader("X-Token"), models.RoleAdmin); err != nil {
			respondServiceError(c, err)
			return
		}
	default:
		respondServiceError(c, errors.Join(services.ErrInvalidInput, errors.New("role must be customer, staff or admin")))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    req.UserID,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Specialty != nil {
		user.Specialty = *req.Specialty
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		// The primary key decides duplicates, so two concurrent signups of
		// the same id both get a clean answer: one Created, one Conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondServiceError(c, services.ErrConflict)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.UserID, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.UserID,
		"role":    user.Role,
	})
}

// Logout -> destroy the session immediately.
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetHeader("X-Token")
	if token == "" {
		respondServiceError(c, services.ErrUnauthorized)
		return
	}
	ac.Sessions.Logout(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Health -> public liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"server_time": time.Now().UTC().Format(time.RFC3339),
	})
}
