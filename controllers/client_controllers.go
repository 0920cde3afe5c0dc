package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// onlineWindow is how recently a device must have pinged to count as online.
const onlineWindow = 30 * time.Second

type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// Ping -> table-side devices announce themselves periodically. Public: a
// device pings before anyone logs in.
func (cc *ClientController) Ping(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id"`
		TableID  string `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.DeviceID == "" || req.TableID == "" {
		respondServiceError(c, errors.Join(services.ErrInvalidInput, errors.New("device_id and table_id required")))
		return
	}

	device := models.ClientDevice{
		DeviceID: req.DeviceID,
		TableID:  req.TableID,
		LastSeen: time.Now(),
	}
	if err := cc.DB.Save(&device).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "ok", nil)
}

// GetClients -> admin view of devices seen within the online window.
func (cc *ClientController) GetClients(c *gin.Context) {
	cutoff := time.Now().Add(-onlineWindow)

	var devices []models.ClientDevice
	if err := cc.DB.Where("last_seen >= ?", cutoff).Order("device_id").Find(&devices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Online clients", gin.H{
		"online": devices,
		"count":  len(devices),
	})
}

// DeleteClient -> admin drops one device record.
func (cc *ClientController) DeleteClient(c *gin.Context) {
	deviceID := c.Param("device_id")
	if err := cc.DB.Delete(&models.ClientDevice{}, "device_id = ?", deviceID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Client removed", gin.H{"device_id": deviceID})
}

// ClearClients -> admin drops all device records.
func (cc *ClientController) ClearClients(c *gin.Context) {
	if err := cc.DB.Where("1 = 1").Delete(&models.ClientDevice{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Clients cleared", nil)
}
