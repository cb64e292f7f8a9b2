package models

import "time"

// Session statuses as the API reports them.
const (
	SessionActive = "ACTIVE"
	SessionClosed = "CLOSED"
)

// Session binds a physical table to an ordering flow. The server owns the
// lifecycle; the client only caches the id between page loads.
type Session struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TableID     string    `gorm:"type:varchar(64);not null;index" json:"tableId"`
	Status      string    `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	TableNumber string    `gorm:"type:varchar(50)" json:"tableNumber,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}
