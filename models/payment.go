package models

import "time"

const (
	MethodCard = "card"
	MethodCash = "cash"
	MethodUPI  = "upi"
)

func ValidMethod(m string) bool {
	switch m {
	case MethodCard, MethodCash, MethodUPI:
		return true
	}
	return false
}

// Payment is created at most once per order. Amount is copied from the
// order total at the moment of payment.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    string    `gorm:"type:varchar(20);not null" json:"method"`
	Status    string    `gorm:"type:varchar(20);not null;default:'success'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
