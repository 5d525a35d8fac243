package models

import "time"

// PopulationEvent: satu baris ledger populasi. Append-only, tidak pernah
// diedit atau dihapus; Delta bertanda (tebar +, koreksi/panen -).
type PopulationEvent struct {
	ID             uint `gorm:"primaryKey"`
	PondID         uint `gorm:"index;not null"`
	Pond           Pond
	Date           time.Time `gorm:"index;not null"`
	Delta          int64     `gorm:"not null"` // tidak boleh 0
	ResultingTotal int64     `gorm:"not null"` // running total setelah delta diterapkan
	Reason         string    `gorm:"size:255"`
	CreatedAt      time.Time
}
