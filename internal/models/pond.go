package models

import "time"

type PondStatus string

const (
	StatusAman     PondStatus = "aman"
	StatusWaspada  PondStatus = "waspada"
	StatusBerisiko PondStatus = "berisiko"
)

type StatusSource string

const (
	StatusSourceAuto   StatusSource = "auto"   // dihitung ulang dari classifier
	StatusSourceManual StatusSource = "manual" // di-override operator, bertahan sampai recompute berikutnya
)

// Pond: satu kolam budidaya. Population adalah cache dari running total
// PopulationEvent; sumber kebenaran tetap ledger-nya.
type Pond struct {
	ID        uint `gorm:"primaryKey"`
	FarmID    uint `gorm:"index;not null"`
	Farm      Farm
	Name      string  `gorm:"size:100;not null"`
	LengthM   float64 `gorm:"column:length_m"` // meter
	WidthM    float64 `gorm:"column:width_m"`
	DepthM    float64 `gorm:"column:depth_m"`
	StockingDate *time.Time `gorm:"index"` // nil = belum tebar
	Population   int64      `gorm:"not null;default:0"`
	Status       PondStatus   `gorm:"size:20;not null;default:aman"`
	StatusSource StatusSource `gorm:"size:10;not null;default:auto"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VolumeM3 mengembalikan volume kolam dalam m3, 0 bila geometri belum lengkap.
func (p Pond) VolumeM3() float64 {
	if p.LengthM <= 0 || p.WidthM <= 0 || p.DepthM <= 0 {
		return 0
	}
	return p.LengthM * p.WidthM * p.DepthM
}
