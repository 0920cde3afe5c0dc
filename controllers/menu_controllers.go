package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// GetMenu -> the orderable catalog, for any authenticated session.
func (mc *MenuController) GetMenu(c *gin.Context) {
	items, err := mc.Catalog.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{"items": items})
}

// CreateItem -> admin adds a catalog item.
func (mc *MenuController) CreateItem(c *gin.Context) {
	var req struct {
		ItemID   string   `json:"item_id"`
		Name     string   `json:"name"`
		Price    float64  `json:"price"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.Create(models.MenuItem{
		ItemID:   req.ItemID,
		Name:     req.Name,
		Price:    req.Price,
		Tags:     joinTags(req.Tags),
		Category: req.Category,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateItem -> admin edits name/price/tags/category. Historical order
// lines keep their denormalized copies.
func (mc *MenuController) UpdateItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var req struct {
		Name     *string   `json:"name"`
		Price    *float64  `json:"price"`
		Tags     *[]string `json:"tags"`
		Category *string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tags *string
	if req.Tags != nil {
		joined := joinTags(*req.Tags)
		tags = &joined
	}

	item, err := mc.Catalog.Update(itemID, req.Name, req.Price, tags, req.Category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteItem -> admin removes an item from the catalog.
func (mc *MenuController) DeleteItem(c *gin.Context) {
	itemID := c.Param("item_id")
	if err := mc.Catalog.Delete(itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": itemID})
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
