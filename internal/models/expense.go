package models

import "time"

type ExpenseCategory struct {
	ID        uint `gorm:"primaryKey"`
	FarmID    uint `gorm:"index;not null"`
	Farm      Farm
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Expense struct {
	ID          uint `gorm:"primaryKey"`
	FarmID      uint `gorm:"index;not null"`
	Farm        Farm
	CategoryID  uint `gorm:"index;not null"`
	Category    ExpenseCategory
	Date        time.Time `gorm:"index;not null"`
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
