package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

// InventoryService owns the per-item stock counters. Stock is floored at
// zero: a decrement that would underflow clamps instead of erroring.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

func (is *InventoryService) List() ([]models.InventoryCounter, error) {
	var counters []models.InventoryCounter
	if err := withRetry(func() error { return is.DB.Order("item_id").Find(&counters).Error }); err != nil {
		return nil, err
	}
	return counters, nil
}

// Decrement atomically applies stock = max(0, stock - qty) in a single
// UPDATE. There is no dedup key: callers must invoke it exactly once per
// order line.
func (is *InventoryService) Decrement(itemID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidInput
	}
	return withRetry(func() error {
		return is.DB.Model(&models.InventoryCounter{}).
			Where("item_id = ?", itemID).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", qty, qty),
				"updated_at": time.Now(),
			}).Error
	})
}

// SetStock is the admin override. It upserts so counters can be created for
// newly added menu items.
func (is *InventoryService) SetStock(itemID string, value int) (models.InventoryCounter, error) {
	if itemID == "" || value < 0 {
		return models.InventoryCounter{}, ErrInvalidInput
	}
	counter := models.InventoryCounter{
		ItemID:    itemID,
		Stock:     value,
		UpdatedAt: time.Now(),
	}
	err := withRetry(func() error {
		return is.DB.Save(&counter).Error
	})
	if err != nil {
		return models.InventoryCounter{}, err
	}
	return counter, nil
}
