package models

import "time"

const (
	StatusPlaced    = "placed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusServed    = "served"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// ValidStatus reports whether s is one of the four recognized order states.
// The lifecycle is conceptually placed -> preparing -> ready -> served, but
// staff and admins may set any of the four (a deliberate escape hatch).
func ValidStatus(s string) bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusServed:
		return true
	}
	return false
}

// Order is append-only: rows are never deleted.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"order_id"`
	UserID        string      `gorm:"index;type:varchar(100);not null" json:"user_id"`
	TableID       string      `gorm:"type:varchar(50);not null" json:"table_id"`
	Status        string      `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Total         float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

// OrderLine embeds a denormalized copy of the menu item taken at order time,
// so later catalog edits never rewrite history.
type OrderLine struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID     string    `gorm:"type:varchar(100);not null" json:"item_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category   string    `gorm:"type:varchar(100);not null" json:"category"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	AssignedTo string    `gorm:"type:varchar(100)" json:"assigned_to"` // staff user id, empty if unassigned
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
