package models

import "time"

type MenuItem struct {
	ItemID    string    `gorm:"primaryKey;type:varchar(100)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Tags      string    `gorm:"type:varchar(255)" json:"tags"` // comma-separated
	Category  string    `gorm:"type:varchar(100);not null" json:"category"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (m *MenuItem) TagSet() []string {
	return SplitSpecialty(m.Tags)
}

func (m *MenuItem) HasTag(tag string) bool {
	for _, t := range m.TagSet() {
		if t == tag {
			return true
		}
	}
	return false
}
