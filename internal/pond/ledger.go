package pond

import (
	"errors"
	"time"

	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

// ApplyDelta menambahkan satu baris ledger populasi dan menyinkronkan cache
// Pond.Population, sebagai satu unit atomic per kolam. Delta 0 ditolak supaya
// ledger tetap bermakna; running total tidak pernah boleh negatif.
func ApplyDelta(db *gorm.DB, pondID uint, delta int64, reason string, at time.Time) (*models.PopulationEvent, error) {
	unlock := lockPond(pondID)
	defer unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	p, err := getPondTx(tx, pondID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	ev, err := applyDeltaTx(tx, p, delta, reason, at)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return ev, nil
}

// StockPond: penebaran benih. Mengisi tanggal tebar (sekali saja) dan mencatat
// PopulationEvent pertama kolam.
func StockPond(db *gorm.DB, pondID uint, count int64, note string, at time.Time) (*models.PopulationEvent, error) {
	if count <= 0 {
		return nil, validationf("jumlah tebar harus lebih dari 0")
	}

	unlock := lockPond(pondID)
	defer unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	p, err := getPondTx(tx, pondID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if p.StockingDate != nil {
		tx.Rollback()
		return nil, validationf("kolam sudah pernah ditebar, pakai koreksi populasi untuk penambahan")
	}

	if err := tx.Model(&models.Pond{}).Where("id = ?", p.ID).Update("stocking_date", at).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	p.StockingDate = &at

	reason := "tebar benih"
	if note != "" {
		reason = note
	}

	ev, err := applyDeltaTx(tx, p, count, reason, at)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return ev, nil
}

// applyDeltaTx menjalankan langkah inti ledger pada transaksi yang sedang
// berjalan; pemanggil wajib sudah memegang lock kolam.
func applyDeltaTx(tx *gorm.DB, p *models.Pond, delta int64, reason string, at time.Time) (*models.PopulationEvent, error) {
	if delta == 0 {
		return nil, validationf("delta populasi tidak boleh 0")
	}

	newTotal := p.Population + delta
	if newTotal < 0 {
		return nil, invariantf("populasi tidak boleh negatif (sekarang %d, delta %d)", p.Population, delta)
	}

	ev := models.PopulationEvent{
		PondID:         p.ID,
		Date:           at,
		Delta:          delta,
		ResultingTotal: newTotal,
		Reason:         reason,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Pond{}).Where("id = ?", p.ID).Update("population", newTotal).Error; err != nil {
		return nil, err
	}
	p.Population = newTotal

	// Cache status di record kolam hanya hint; keputusan selalu hitung ulang.
	if err := refreshStatusTx(tx, p); err != nil {
		return nil, err
	}

	return &ev, nil
}

// ListEvents: urutan terbaru dulu, bisa dilanjutkan dengan offset, selalu finite.
func ListEvents(db *gorm.DB, pondID uint, limit, offset int) ([]models.PopulationEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var events []models.PopulationEvent
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

func getPondTx(tx *gorm.DB, pondID uint) (*models.Pond, error) {
	var p models.Pond
	if err := tx.First(&p, pondID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("kolam tidak ditemukan")
		}
		return nil, err
	}
	return &p, nil
}
