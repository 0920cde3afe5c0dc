package models

import "time"

// Session is a point-in-time copy of the user taken at login. Role or
// specialty edits to the user do not touch live sessions; staleness is
// bounded by the TTL.
type Session struct {
	Token     string    `gorm:"primaryKey;type:varchar(512)" json:"token"`
	UserID    string    `gorm:"index;type:varchar(100);not null" json:"user_id"`
	DeviceID  string    `gorm:"type:varchar(100);not null" json:"device_id"`
	TableID   string    `gorm:"type:varchar(50)" json:"table_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Specialty string    `gorm:"type:varchar(255)" json:"specialty"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
