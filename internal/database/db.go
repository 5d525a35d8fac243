package database

import (
	"tambak-backend/internal/config"
	"tambak-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config, log *zap.Logger) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("tidak bisa konek ke database", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate gagal", zap.Error(err))
	}

	log.Info("koneksi database siap, migration selesai")
}

// Migrate dipisah supaya bisa dipakai test dengan DB sendiri.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Farm{},
		&models.FarmMember{},
		&models.Pond{},
		&models.PopulationEvent{},
		&models.SamplingEvent{},
		&models.HarvestEvent{},
		&models.Buyer{},
		&models.Sale{},
		&models.FeedRecord{},
		&models.ExpenseCategory{},
		&models.Expense{},
	)
}
