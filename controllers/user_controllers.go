package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/middlewares"
	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAllUsers -> admin roster view.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("user_id").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", gin.H{"users": users})
}

// UpdateUser -> admin edits password, role or specialty. Live sessions keep
// the role snapshot they were issued with until they expire.
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID := c.Param("user_id")

	var req struct {
		Password  *string `json:"password"`
		Role      *string `json:"role"`
		Specialty *string `json:"specialty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		respondServiceError(c, services.ErrNotFound)
		return
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.Password = string(hashed)
	}
	if req.Role != nil {
		switch *req.Role {
		case models.RoleCustomer, models.RoleStaff, models.RoleAdmin:
			user.Role = *req.Role
		default:
			respondServiceError(c, errors.Join(services.ErrInvalidInput, errors.New("unknown role")))
			return
		}
	}
	if req.Specialty != nil {
		user.Specialty = *req.Specialty
	}
	user.UpdatedAt = time.Now()

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

// DeleteUser -> admin removes an account. Orders stay: they are an
// append-only ledger.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID := c.Param("user_id")

	res := uc.DB.Delete(&models.User{}, "user_id = ?", userID)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondServiceError(c, services.ErrNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": userID})
}

// UpdateProfile -> self-service password change.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)
	userID := c.Param("user_id")
	if userID != session.UserID {
		respondServiceError(c, services.ErrForbidden)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Password == "" {
		respondServiceError(c, errors.Join(services.ErrInvalidInput, errors.New("password required")))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	err = uc.DB.Model(&models.User{}).
		Where("user_id = ?", session.UserID).
		Updates(map[string]interface{}{"password": string(hashed), "updated_at": time.Now()}).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

// DeleteProfile -> customers may delete their own account.
func (uc *UserController) DeleteProfile(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)
	if session.Role != models.RoleCustomer {
		respondServiceError(c, services.ErrForbidden)
		return
	}

	if err := uc.DB.Delete(&models.User{}, "user_id = ?", session.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	uc.DB.Delete(&models.Session{}, "user_id = ?", session.UserID)
	utils.RespondJSON(c, http.StatusOK, "Account deleted", gin.H{"user_id": session.UserID})
}
