package pond

import (
	"testing"
	"time"

	"tambak-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePondDoesNotClobberPopulation(t *testing.T) {
	db := newTestDB(t)
	p := newTestPond(t, db, nil)

	_, err := StockPond(db, p.ID, 1000, "", time.Now())
	require.NoError(t, err)

	// Snapshot lama, seperti yang dipegang handler sebelum update jalan.
	var stale models.Pond
	require.NoError(t, db.First(&stale, p.ID).Error)
	require.Equal(t, int64(1000), stale.Population)

	// Ledger menulis di antara baca dan update registry.
	_, err = ApplyDelta(db, p.ID, -200, "mortalitas", time.Now())
	require.NoError(t, err)

	name := "Kolam A1 Renovasi"
	updated, err := UpdatePond(db, stale.ID, PondUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(800), updated.Population)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, "Kolam A1 Renovasi", fresh.Name)
	assert.Equal(t, int64(800), fresh.Population)

	// Cache tetap sama dengan jumlah delta ledger.
	events, err := ListEvents(db, p.ID, 0, 0)
	require.NoError(t, err)
	var sum int64
	for _, ev := range events {
		sum += ev.Delta
	}
	assert.Equal(t, sum, fresh.Population)
}

func TestUpdatePondGeometryRecomputesStatusFromFreshState(t *testing.T) {
	db := newTestDB(t)
	p := newTestPond(t, db, nil) // 100 m3

	_, err := StockPond(db, p.ID, 6000, "", time.Now())
	require.NoError(t, err)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	require.Equal(t, models.StatusWaspada, fresh.Status) // 60 ekor/m3

	// Perbesar kolam: 20x10x2 = 400 m3 -> 15 ekor/m3 -> aman.
	length, width := 20.0, 10.0
	updated, err := UpdatePond(db, p.ID, PondUpdate{LengthM: &length, WidthM: &width})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAman, updated.Status)
	assert.Equal(t, models.StatusSourceAuto, updated.StatusSource)
}

func TestUpdatePondManualStatusOverride(t *testing.T) {
	db := newTestDB(t)
	p := newTestPond(t, db, nil)

	_, err := StockPond(db, p.ID, 1000, "", time.Now())
	require.NoError(t, err)

	status := models.StatusBerisiko
	updated, err := UpdatePond(db, p.ID, PondUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBerisiko, updated.Status)
	assert.Equal(t, models.StatusSourceManual, updated.StatusSource)

	// Override bertahan sampai recompute otomatis berikutnya.
	_, err = ApplyDelta(db, p.ID, -100, "mortalitas", time.Now())
	require.NoError(t, err)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, models.StatusAman, fresh.Status) // 9 ekor/m3
	assert.Equal(t, models.StatusSourceAuto, fresh.StatusSource)
}

func TestUpdatePondValidation(t *testing.T) {
	db := newTestDB(t)
	p := newTestPond(t, db, func(p *models.Pond) {
		p.LengthM, p.WidthM, p.DepthM = 0, 0, 0
	})

	var verr *ValidationError

	empty := "  "
	_, err := UpdatePond(db, p.ID, PondUpdate{Name: &empty})
	require.ErrorAs(t, err, &verr)

	negative := -1.0
	_, err = UpdatePond(db, p.ID, PondUpdate{LengthM: &negative})
	require.ErrorAs(t, err, &verr)

	// Kolam tanpa geometri tidak boleh diisi sebagian.
	length := 10.0
	_, err = UpdatePond(db, p.ID, PondUpdate{LengthM: &length})
	require.ErrorAs(t, err, &verr)

	bad := models.PondStatus("gawat")
	_, err = UpdatePond(db, p.ID, PondUpdate{Status: &bad})
	require.ErrorAs(t, err, &verr)

	name := "Kolam B2"
	var nerr *NotFoundError
	_, err = UpdatePond(db, 9999, PondUpdate{Name: &name})
	require.ErrorAs(t, err, &nerr)
}
