package models

import "time"

// FeedRecord: catatan pemberian pakan harian per kolam.
type FeedRecord struct {
	ID        uint `gorm:"primaryKey"`
	PondID    uint `gorm:"index;not null"`
	Pond      Pond
	Date      time.Time `gorm:"index;not null"`
	WeightKg  float64   `gorm:"not null"`
	FeedName  string    `gorm:"size:100"`
	Note      string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
