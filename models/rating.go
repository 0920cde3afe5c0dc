package models

import "time"

// Rating is keyed by order id: at most one per order, re-rating overwrites.
type Rating struct {
	OrderID   uint      `gorm:"primaryKey" json:"order_id"`
	Stars     int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
