package pond

import (
	"testing"

	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Satu koneksi saja: tiap koneksi ke :memory: adalah database terpisah.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// newTestPond membuat tambak + kolam 10x5x2 m (volume 100 m3).
func newTestPond(t *testing.T, db *gorm.DB, mutate func(*models.Pond)) *models.Pond {
	t.Helper()

	f := models.Farm{Name: "Tambak Uji"}
	require.NoError(t, db.Create(&f).Error)

	p := models.Pond{
		FarmID:       f.ID,
		Name:         "Kolam A1",
		LengthM:      10,
		WidthM:       5,
		DepthM:       2,
		Status:       models.StatusAman,
		StatusSource: models.StatusSourceAuto,
	}
	if mutate != nil {
		mutate(&p)
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}
