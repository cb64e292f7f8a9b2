package models

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID  string    `gorm:"type:varchar(36);not null" json:"categoryId"`
	Category    Category  `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int       `json:"stock"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
}

// SoldOut reports whether the product can still be selected.
func (p Product) SoldOut() bool {
	return p.Stock <= 0
}
