package models

import "time"

// ClientDevice tracks table-side devices that ping the server. A device is
// considered online if it pinged within the last 30 seconds.
type ClientDevice struct {
	DeviceID string    `gorm:"primaryKey;type:varchar(100)" json:"device_id"`
	TableID  string    `gorm:"type:varchar(50)" json:"table_id"`
	LastSeen time.Time `gorm:"not null" json:"last_seen"`
}
