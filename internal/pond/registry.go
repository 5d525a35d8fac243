package pond

import (
	"strings"

	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

// PondUpdate: perubahan parsial pada registry kolam. Field nil tidak disentuh.
type PondUpdate struct {
	Name    *string
	LengthM *float64
	WidthM  *float64
	DepthM  *float64
	// Status manual override; menang sampai recompute otomatis berikutnya.
	Status *models.PondStatus
}

// UpdatePond menerapkan perubahan registry di bawah lock kolam: state dibaca
// segar di dalam transaksi dan hanya kolom yang disentuh yang ditulis.
// Population milik ledger, update registry tidak pernah menyentuhnya.
func UpdatePond(db *gorm.DB, pondID uint, upd PondUpdate) (*models.Pond, error) {
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

	changes := map[string]interface{}{}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			tx.Rollback()
			return nil, validationf("nama kolam tidak boleh kosong")
		}
		p.Name = name
		changes["name"] = name
	}

	hadGeometry := p.VolumeM3() > 0

	// Dimensi yang dikirim harus positif; update sebagian hanya boleh untuk
	// kolam yang geometrinya sudah valid.
	for _, dim := range []struct {
		val    *float64
		dst    *float64
		column string
	}{
		{upd.LengthM, &p.LengthM, "length_m"},
		{upd.WidthM, &p.WidthM, "width_m"},
		{upd.DepthM, &p.DepthM, "depth_m"},
	} {
		if dim.val == nil {
			continue
		}
		if *dim.val <= 0 {
			tx.Rollback()
			return nil, validationf("dimensi kolam harus lebih dari 0")
		}
		*dim.dst = *dim.val
		changes[dim.column] = *dim.val
	}

	geometryTouched := upd.LengthM != nil || upd.WidthM != nil || upd.DepthM != nil
	if geometryTouched && !hadGeometry && p.VolumeM3() <= 0 {
		tx.Rollback()
		return nil, validationf("geometri belum lengkap: panjang, lebar, dan dalam harus diisi bersama")
	}

	if upd.Status != nil {
		switch *upd.Status {
		case models.StatusAman, models.StatusWaspada, models.StatusBerisiko:
		default:
			tx.Rollback()
			return nil, validationf("status harus aman/waspada/berisiko")
		}
		p.Status = *upd.Status
		p.StatusSource = models.StatusSourceManual
		changes["status"] = *upd.Status
		changes["status_source"] = models.StatusSourceManual
	}

	if len(changes) > 0 {
		if err := tx.Model(&models.Pond{}).Where("id = ?", p.ID).Updates(changes).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Tanpa override manual, status dihitung ulang dari classifier.
	if upd.Status == nil {
		if err := refreshStatusTx(tx, p); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return p, nil
}
