package models

import "time"

// InventoryCounter is floored at zero: decrements clamp, never go negative.
type InventoryCounter struct {
	ItemID    string    `gorm:"primaryKey;type:varchar(100)" json:"item_id"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
