package models

import "time"

// SamplingEvent: hasil sampling ukuran ikan. FishPerKg ("size") adalah jumlah
// ekor per kilogram; berat rata-rata per ekor = 1000 / FishPerKg gram.
type SamplingEvent struct {
	ID        uint `gorm:"primaryKey"`
	PondID    uint `gorm:"index;not null"`
	Pond      Pond
	Date      time.Time `gorm:"index;not null"`
	FishPerKg float64   `gorm:"not null"` // > 0
	Note      string    `gorm:"size:255"`
	CreatedAt time.Time
}
