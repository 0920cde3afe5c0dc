package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type InventoryController struct {
	Inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{Inventory: inventory}
}

// GetInventory -> admin stock view.
func (ic *InventoryController) GetInventory(c *gin.Context) {
	counters, err := ic.Inventory.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory", gin.H{"items": counters})
}

// UpdateInventory -> admin override of a stock counter.
func (ic *InventoryController) UpdateInventory(c *gin.Context) {
	itemID := c.Param("item_id")

	var req struct {
		Stock int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	counter, err := ic.Inventory.SetStock(itemID, req.Stock)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock updated", counter)
}
