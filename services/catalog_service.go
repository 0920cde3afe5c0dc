package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

// CatalogService is the read-mostly view of orderable items. Admin CRUD
// lives here too; historical order lines carry their own denormalized copy
// of name/price/category, so catalog edits never rewrite old orders.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (cs *CatalogService) List() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := withRetry(func() error { return cs.DB.Order("item_id").Find(&items).Error }); err != nil {
		return nil, err
	}
	return items, nil
}

// Resolve looks up the current price/name/category for an order line.
func (cs *CatalogService) Resolve(itemID string) (models.MenuItem, error) {
	var item models.MenuItem
	if err := cs.DB.First(&item, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MenuItem{}, ErrNotFound
		}
		return models.MenuItem{}, errors.Join(ErrUnavailable, err)
	}
	return item, nil
}

func (cs *CatalogService) Create(item models.MenuItem) (models.MenuItem, error) {
	if item.ItemID == "" || item.Name == "" || item.Category == "" || item.Price < 0 {
		return models.MenuItem{}, ErrInvalidInput
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	// Uniqueness is enforced by the primary key, not a racy pre-check: two
	// concurrent creates of the same id both reach the insert and exactly
	// one loses with a constraint violation.
	if err := withRetry(func() error { return cs.DB.Create(&item).Error }); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.MenuItem{}, ErrConflict
		}
		return models.MenuItem{}, err
	}
	return item, nil
}

func (cs *CatalogService) Update(itemID string, name *string, price *float64, tags *string, category *string) (models.MenuItem, error) {
	item, err := cs.Resolve(itemID)
	if err != nil {
		return models.MenuItem{}, err
	}
	if name != nil {
		item.Name = *name
	}
	if price != nil {
		if *price < 0 {
			return models.MenuItem{}, ErrInvalidInput
		}
		item.Price = *price
	}
	if tags != nil {
		item.Tags = *tags
	}
	if category != nil {
		item.Category = *category
	}
	item.UpdatedAt = time.Now()
	if err := withRetry(func() error { return cs.DB.Save(&item).Error }); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

func (cs *CatalogService) Delete(itemID string) error {
	if _, err := cs.Resolve(itemID); err != nil {
		return err
	}
	return withRetry(func() error {
		return cs.DB.Delete(&models.MenuItem{}, "item_id = ?", itemID).Error
	})
}
