package pond

import (
	"errors"
	"math"
	"time"

	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

// Rasio size disimpan sampai tiga desimal. Pembulatan bilangan bulat membuat
// konversi gram<->ekor-per-kg tidak bisa balik untuk ikan besar (di atas
// ~45 gram errornya sudah lebih dari 1 gram); tiga desimal menjaga
// |gram' - gram| <= 1 di seluruh rentang 1..1000 gram.
const fishPerKgPrecision = 1000

// FishPerKgFromGrams mengubah berat rata-rata per ekor (gram) ke rasio size.
func FishPerKgFromGrams(gramsPerFish float64) float64 {
	return math.Round(1000/gramsPerFish*fishPerKgPrecision) / fishPerKgPrecision
}

// GramsPerFish: berat rata-rata per ekor (gram) dari rasio size.
func GramsPerFish(fishPerKg float64) float64 {
	return 1000 / fishPerKg
}

// RecordSampling mencatat satu observasi size ke ledger sampling (append-only).
func RecordSampling(db *gorm.DB, pondID uint, fishPerKg float64, note string, at time.Time) (*models.SamplingEvent, error) {
	if fishPerKg <= 0 {
		return nil, validationf("fish_per_kg harus lebih dari 0")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	p, err := getPondTx(tx, pondID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	ev := models.SamplingEvent{
		PondID:    p.ID,
		Date:      at,
		FishPerKg: fishPerKg,
		Note:      note,
	}
	if err := tx.Create(&ev).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Sampling baru menggeser basis klasifikasi ke biomassa; refresh hint-nya.
	if err := refreshStatusTx(tx, p); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

// LatestSampling: event sampling dengan timestamp terbesar, nil kalau belum ada.
func LatestSampling(db *gorm.DB, pondID uint) (*models.SamplingEvent, error) {
	var ev models.SamplingEvent
	err := db.
		Where("pond_id = ?", pondID).
		Order("date DESC, id DESC").
		First(&ev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

func ListSamplings(db *gorm.DB, pondID uint, limit, offset int) ([]models.SamplingEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var events []models.SamplingEvent
	err := db.
		Where("pond_id = ?", pondID).
		Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
