package pond

import (
	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

type ClassifySource string

const (
	SourceCount   ClassifySource = "count"   // belum ada sampling, pakai kepadatan ekor
	SourceBiomass ClassifySource = "biomass" // ada sampling, pakai kepadatan biomassa
)

// Ambang kepadatan. Basis ekor dalam ekor/m3, basis biomassa dalam kg/m3.
const (
	countWaspada    = 50.0
	countBerisiko   = 100.0
	biomassWaspada  = 10.0
	biomassBerisiko = 20.0
)

// Classification: hasil klasifikasi risiko kepadatan. Selalu menyebut basis
// yang dipakai (Source) supaya pemanggil tahu kenapa tier-nya begitu.
type Classification struct {
	Tier             models.PondStatus
	Source           ClassifySource
	DensityCount     float64 // ekor/m3
	DensityBiomass   float64 // kg/m3
	BiomassKg        float64
	InsufficientData bool // geometri belum diisi, kepadatan tidak terdefinisi
}

// Classify murni dan deterministik: state yang sama selalu menghasilkan tier
// dan source yang sama. Tidak pernah membaca atau menulis storage.
func Classify(p models.Pond, latest *models.SamplingEvent) Classification {
	result := Classification{
		Tier:   models.StatusAman,
		Source: SourceCount,
	}

	if latest != nil {
		result.Source = SourceBiomass
		avgWeightKg := GramsPerFish(latest.FishPerKg) / 1000
		result.BiomassKg = float64(p.Population) * avgWeightKg
	}

	volume := p.VolumeM3()
	if volume <= 0 {
		result.InsufficientData = true
		return result
	}

	result.DensityCount = float64(p.Population) / volume

	if result.Source == SourceBiomass {
		result.DensityBiomass = result.BiomassKg / volume
		result.Tier = tierFor(result.DensityBiomass, biomassWaspada, biomassBerisiko)
	} else {
		result.Tier = tierFor(result.DensityCount, countWaspada, countBerisiko)
	}

	return result
}

func tierFor(density, waspada, berisiko float64) models.PondStatus {
	switch {
	case density > berisiko:
		return models.StatusBerisiko
	case density > waspada:
		return models.StatusWaspada
	default:
		return models.StatusAman
	}
}

// refreshStatusTx menghitung ulang status dan menulis hint-nya ke record
// kolam. Recompute otomatis selalu menang atas override manual sebelumnya;
// override hanya bertahan sampai recompute berikutnya.
func refreshStatusTx(tx *gorm.DB, p *models.Pond) error {
	latest, err := latestSamplingTx(tx, p.ID)
	if err != nil {
		return err
	}

	cls := Classify(*p, latest)
	if p.Status == cls.Tier && p.StatusSource == models.StatusSourceAuto {
		return nil
	}

	err = tx.Model(&models.Pond{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"status":        cls.Tier,
		"status_source": models.StatusSourceAuto,
	}).Error
	if err != nil {
		return err
	}

	p.Status = cls.Tier
	p.StatusSource = models.StatusSourceAuto
	return nil
}

func latestSamplingTx(tx *gorm.DB, pondID uint) (*models.SamplingEvent, error) {
	return LatestSampling(tx, pondID)
}
