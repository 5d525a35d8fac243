package feed

import (
	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

// TotalFeedWeight: akumulasi pakan (kg) yang sudah diberikan ke satu kolam.
// Dipakai proyeksi untuk menghitung biaya pakan.
func TotalFeedWeight(db *gorm.DB, pondID uint) (float64, error) {
	var total float64
	err := db.Model(&models.FeedRecord{}).
		Where("pond_id = ?", pondID).
		Select("COALESCE(SUM(weight_kg), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Tabel feeding rate: persentase biomassa per hari menurut ukuran ikan.
// Ikan kecil makan proporsional lebih banyak.
var feedingRates = []struct {
	maxWeightGram float64
	rate          float64
}{
	{10, 0.07},
	{25, 0.055},
	{50, 0.045},
	{100, 0.035},
	{200, 0.03},
}

const feedingRateLarge = 0.025

// RecommendDaily mengembalikan rekomendasi pakan harian (kg) dari berat
// rata-rata ikan (gram) dan total biomassa (kg). Murni lookup tabel.
func RecommendDaily(currentWeightGram, biomassKg float64) float64 {
	if currentWeightGram <= 0 || biomassKg <= 0 {
		return 0
	}
	for _, row := range feedingRates {
		if currentWeightGram <= row.maxWeightGram {
			return biomassKg * row.rate
		}
	}
	return biomassKg * feedingRateLarge
}
