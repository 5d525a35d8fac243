package sale

import (
	"tambak-backend/internal/models"

	"gorm.io/gorm"
)

// RecordSaleTx mencatat satu penjualan di dalam transaksi pemanggil. Ini satu-
// satunya jalan masuk ke ledger penjualan dari proses panen: berat, harga, dan
// jumlah ekor harus sama persis dengan event panennya.
func RecordSaleTx(tx *gorm.DB, s *models.Sale) error {
	s.Total = s.WeightKg * s.PricePerKg
	return tx.Create(s).Error
}
