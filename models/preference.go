package models

import "time"

type Preference struct {
	UserID           string    `gorm:"primaryKey;type:varchar(100)" json:"user_id"`
	VegOnly          bool      `gorm:"not null;default:false" json:"veg_only"`
	FavoriteCategory string    `gorm:"type:varchar(100)" json:"favorite_category"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
