package models

import (
	"strings"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

type User struct {
	UserID    string    `gorm:"primaryKey;type:varchar(100)" json:"user_id"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Specialty string    `gorm:"type:varchar(255)" json:"specialty"` // comma-separated categories, staff only
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// SpecialtySet splits the comma-separated specialty column into a clean slice.
func (u *User) SpecialtySet() []string {
	return SplitSpecialty(u.Specialty)
}

func SplitSpecialty(specialty string) []string {
	if specialty == "" {
		return nil
	}
	parts := strings.Split(specialty, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func HasCategory(specialty, category string) bool {
	for _, s := range SplitSpecialty(specialty) {
		if s == category {
			return true
		}
	}
	return false
}
