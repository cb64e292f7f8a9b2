package models

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(100);unique" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}
