package models

type OrderItem struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID string `gorm:"type:varchar(36);not null" json:"orderId"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID  string  `gorm:"type:varchar(36);not null" json:"productId"`
	Product    Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
}
