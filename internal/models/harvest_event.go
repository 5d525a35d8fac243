package models

import "time"

type HarvestType string

const (
	HarvestPartial HarvestType = "parsial"
	HarvestTotal   HarvestType = "total"
)

// HarvestEvent: transaksi panen. Setiap panen selalu menghasilkan satu
// PopulationEvent berkorelasi dengan delta = -Count.
type HarvestEvent struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"size:36;uniqueIndex;not null"` // kode nota panen
	PondID    uint   `gorm:"index;not null"`
	Pond      Pond
	Date       time.Time   `gorm:"index;not null"`
	WeightKg   float64     `gorm:"not null"` // total berat panen, kg
	Count      int64       `gorm:"not null"` // jumlah ekor
	PricePerKg float64     `gorm:"not null"`
	Type       HarvestType `gorm:"size:10;not null"`
	Note       string      `gorm:"size:255"`

	PopulationEventID uint `gorm:"not null"`
	PopulationEvent   PopulationEvent
	SaleID            *uint

	CreatedAt time.Time
}
