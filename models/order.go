package models

import "time"

// Order statuses. CANCELLED is terminal and reachable only from PENDING.
const (
	OrderPending   = "PENDING"
	OrderPreparing = "PREPARING"
	OrderReady     = "READY"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionID   string      `gorm:"type:varchar(36);not null;index" json:"sessionId"`
	Session     Session     `gorm:"foreignKey:SessionID;references:ID" json:"-"`
	Status      string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"totalAmount"`
	CreatedAt   time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"not null" json:"-"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`
}

// CanTransition encodes the server's status machine:
// PENDING -> PREPARING -> READY -> DELIVERED, with CANCELLED from PENDING only.
func CanTransition(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderPreparing || to == OrderCancelled
	case OrderPreparing:
		return to == OrderReady
	case OrderReady:
		return to == OrderDelivered
	default:
		return false
	}
}
