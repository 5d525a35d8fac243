package models

import "time"

type Buyer struct {
	ID        uint `gorm:"primaryKey"`
	FarmID    uint `gorm:"index;not null"`
	Farm      Farm
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:50"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
