package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type BillingController struct {
	DB *gorm.DB
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db}
}

// GetBilling -> admin payment ledger: every payment plus the summed total.
func (bc *BillingController) GetBilling(c *gin.Context) {
	var payments []models.Payment
	if err := bc.DB.Order("id desc").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var total float64
	for _, p := range payments {
		total += p.Amount
	}

	utils.RespondJSON(c, http.StatusOK, "Billing", gin.H{
		"payments": payments,
		"total":    total,
	})
}
