package models

import "time"

// Sale: ledger penjualan. Baris dibuat lewat hand-off panen (berat/harga/ekor
// sama dengan HarvestEvent-nya) supaya konsisten by construction.
type Sale struct {
	ID         uint `gorm:"primaryKey"`
	FarmID     uint `gorm:"index;not null"`
	Farm       Farm
	PondID     uint `gorm:"index;not null"`
	Pond       Pond
	BuyerID    uint `gorm:"index;not null"`
	Buyer      Buyer
	Date       time.Time `gorm:"index;not null"`
	WeightKg   float64   `gorm:"not null"`
	PricePerKg float64   `gorm:"not null"`
	Count      int64     `gorm:"not null"`
	Total      float64   `gorm:"not null"` // WeightKg * PricePerKg
	Note       string    `gorm:"size:255"`
	CreatedAt  time.Time
}
