package pond

import (
	"errors"
	"fmt"
	"time"

	"tambak-backend/internal/models"
	"tambak-backend/internal/sale"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HarvestInput struct {
	PondID     uint
	Date       time.Time
	WeightKg   float64
	Count      int64
	PricePerKg float64
	Type       models.HarvestType
	Note       string
	BuyerID    *uint // opsional: kalau diisi, hand-off ke ledger penjualan

	// Dipakai untuk menghitung ulang biomassa saat validasi berat panen.
	GrowthRateGramPerDay float64
}

// RecordHarvest memvalidasi panen terhadap state ledger yang dibaca segar lalu
// menerapkan event panen + decrement populasi (+ penjualan opsional) sebagai
// satu unit. Transaksi gagal tidak meninggalkan tulisan parsial apa pun.
func RecordHarvest(db *gorm.DB, in HarvestInput) (*models.HarvestEvent, error) {
	if in.Count <= 0 {
		return nil, validationf("jumlah ekor panen harus lebih dari 0")
	}
	if in.WeightKg <= 0 {
		return nil, validationf("berat panen harus lebih dari 0")
	}
	if in.PricePerKg <= 0 {
		return nil, validationf("harga per kg harus lebih dari 0")
	}
	if in.Type != models.HarvestPartial && in.Type != models.HarvestTotal {
		return nil, validationf("tipe panen harus 'parsial' atau 'total'")
	}

	unlock := lockPond(in.PondID)
	defer unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	p, err := getPondTx(tx, in.PondID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Precondition dicek terhadap state segar, bukan nilai lama dari caller.
	if in.Count > p.Population {
		tx.Rollback()
		return nil, invariantf("jumlah panen %d melebihi populasi %d", in.Count, p.Population)
	}

	latest, err := latestSamplingTx(tx, p.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if biomass, ok := CurrentBiomassKg(*p, latest, in.Date, in.GrowthRateGramPerDay); ok && in.WeightKg > biomass {
		tx.Rollback()
		return nil, invariantf("berat panen %.1f kg melebihi estimasi biomassa %.1f kg, lakukan sampling ulang sebelum panen sebesar ini", in.WeightKg, biomass)
	}

	// Decrement lewat ledger; non-negativitas divalidasi ulang di sana sebagai
	// penjaga kedua yang independen.
	reason := fmt.Sprintf("panen %s", in.Type)
	ev, err := applyDeltaTx(tx, p, -in.Count, reason, in.Date)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	h := models.HarvestEvent{
		Reference:         uuid.NewString(),
		PondID:            p.ID,
		Date:              in.Date,
		WeightKg:          in.WeightKg,
		Count:             in.Count,
		PricePerKg:        in.PricePerKg,
		Type:              in.Type,
		Note:              in.Note,
		PopulationEventID: ev.ID,
	}

	if in.BuyerID != nil {
		var buyer models.Buyer
		if err := tx.First(&buyer, *in.BuyerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundf("pembeli tidak ditemukan")
			}
			return nil, err
		}
		if buyer.FarmID != p.FarmID {
			tx.Rollback()
			return nil, validationf("pembeli bukan milik tambak ini")
		}

		s := models.Sale{
			FarmID:     p.FarmID,
			PondID:     p.ID,
			BuyerID:    buyer.ID,
			Date:       in.Date,
			WeightKg:   in.WeightKg,
			PricePerKg: in.PricePerKg,
			Count:      in.Count,
			Note:       in.Note,
		}
		if err := sale.RecordSaleTx(tx, &s); err != nil {
			tx.Rollback()
			return nil, err
		}
		h.SaleID = &s.ID
	}

	if err := tx.Create(&h).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Populasi sisa setelah panen ini dibaca dari event berkorelasinya, bukan
	// dari cache kolam yang bisa sudah digeser penulis lain.
	h.PopulationEvent = *ev
	return &h, nil
}

func ListHarvests(db *gorm.DB, pondID uint, limit, offset int) ([]models.HarvestEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var events []models.HarvestEvent
	err := db.
		Preload("PopulationEvent").
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
