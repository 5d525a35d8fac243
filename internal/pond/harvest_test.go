package pond

import (
	"testing"
	"time"

	"tambak-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func stockedPond(t *testing.T, db *gorm.DB, count int64, at time.Time) *models.Pond {
	t.Helper()
	p := newTestPond(t, db, nil)
	_, err := StockPond(db, p.ID, count, "", at)
	require.NoError(t, err)
	require.NoError(t, db.First(p, p.ID).Error)
	return p
}

func TestRecordHarvestInputValidation(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 1000, now.AddDate(0, 0, -30))

	base := HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             50,
		Count:                400,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	}

	var verr *ValidationError

	in := base
	in.Count = 0
	_, err := RecordHarvest(db, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.WeightKg = 0
	_, err = RecordHarvest(db, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.PricePerKg = -1
	_, err = RecordHarvest(db, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.Type = "sebagian"
	_, err = RecordHarvest(db, in)
	require.ErrorAs(t, err, &verr)
}

func TestRecordHarvestCountExceedsPopulation(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 1000, now.AddDate(0, 0, -30))

	_, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             100,
		Count:                1200,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})

	var ierr *InvariantError
	require.ErrorAs(t, err, &ierr)

	// Panen yang ditolak tidak boleh menyentuh ledger mana pun.
	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(1000), fresh.Population)

	var harvests, popEvents int64
	db.Model(&models.HarvestEvent{}).Where("pond_id = ?", p.ID).Count(&harvests)
	db.Model(&models.PopulationEvent{}).Where("pond_id = ?", p.ID).Count(&popEvents)
	assert.Equal(t, int64(0), harvests)
	assert.Equal(t, int64(1), popEvents) // hanya event tebar
}

func TestRecordHarvestWeightExceedsBiomass(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 1000, now.AddDate(0, 0, -30))

	// 100 g/ekor hari ini -> estimasi biomassa 100 kg.
	_, err := RecordSampling(db, p.ID, 10, "", now)
	require.NoError(t, err)

	_, err = RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             150,
		Count:                500,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})

	var ierr *InvariantError
	require.ErrorAs(t, err, &ierr)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(1000), fresh.Population)
}

func TestRecordHarvestWithoutSamplingSkipsBiomassGuard(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 1000, now.AddDate(0, 0, -30))

	// Tanpa sampling biomassa tidak terkalibrasi; hanya guard ekor yang jalan.
	h, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             500,
		Count:                900,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, h.Reference)
}

func TestRecordHarvestAppendsCorrelatedEvents(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 5000, now.AddDate(0, 0, -60))

	// 100 g/ekor -> biomassa 500 kg, panen 100 kg aman.
	_, err := RecordSampling(db, p.ID, 10, "", now)
	require.NoError(t, err)

	h, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             100,
		Count:                800,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		Note:                 "panen pertama",
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, h.Reference)
	assert.Equal(t, models.HarvestPartial, h.Type)
	require.NotZero(t, h.PopulationEventID)

	var ev models.PopulationEvent
	require.NoError(t, db.First(&ev, h.PopulationEventID).Error)
	assert.Equal(t, int64(-800), ev.Delta)
	assert.Equal(t, int64(4200), ev.ResultingTotal)
	assert.Equal(t, "panen parsial", ev.Reason)

	// Event berkorelasi ikut di hasil, untuk populasi-sisa per panen.
	assert.Equal(t, int64(4200), h.PopulationEvent.ResultingTotal)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(4200), fresh.Population)

	assert.Nil(t, h.SaleID)
}

func TestRecordHarvestWithBuyerCreatesSale(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 5000, now.AddDate(0, 0, -60))

	buyer := models.Buyer{FarmID: p.FarmID, Name: "Pak Budi"}
	require.NoError(t, db.Create(&buyer).Error)

	h, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             120,
		Count:                1000,
		PricePerKg:           28000,
		Type:                 models.HarvestPartial,
		BuyerID:              &buyer.ID,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, h.SaleID)

	var s models.Sale
	require.NoError(t, db.First(&s, *h.SaleID).Error)
	assert.Equal(t, p.FarmID, s.FarmID)
	assert.Equal(t, p.ID, s.PondID)
	assert.Equal(t, buyer.ID, s.BuyerID)
	assert.InDelta(t, 120.0, s.WeightKg, 1e-9)
	assert.InDelta(t, 28000.0, s.PricePerKg, 1e-9)
	assert.Equal(t, int64(1000), s.Count)
	assert.InDelta(t, 120*28000.0, s.Total, 1e-6)
}

func TestRecordHarvestBuyerFromOtherFarmRejected(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 5000, now.AddDate(0, 0, -60))

	other := models.Farm{Name: "Tambak Lain"}
	require.NoError(t, db.Create(&other).Error)
	buyer := models.Buyer{FarmID: other.ID, Name: "Orang Luar"}
	require.NoError(t, db.Create(&buyer).Error)

	_, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             50,
		Count:                400,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		BuyerID:              &buyer.ID,
		GrowthRateGramPerDay: 2,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Rollback harus membatalkan decrement populasi juga.
	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(5000), fresh.Population)

	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	assert.Equal(t, int64(0), sales)
}

func TestHarvestScenario(t *testing.T) {
	db := newTestDB(t)
	d0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	p := stockedPond(t, db, 5000, d0)

	_, err := ApplyDelta(db, p.ID, -200, "mortalitas", d0.AddDate(0, 0, 10))
	require.NoError(t, err)

	_, err = RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 d0.AddDate(0, 0, 70),
		WeightKg:             100,
		Count:                800,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(4000), fresh.Population)

	events, err := ListEvents(db, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(4000), events[0].ResultingTotal)
	assert.Equal(t, int64(4800), events[1].ResultingTotal)
	assert.Equal(t, int64(5000), events[2].ResultingTotal)

	harvests, err := ListHarvests(db, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, harvests, 1)
}

func TestListHarvestsCarriesPerHarvestRemaining(t *testing.T) {
	db := newTestDB(t)
	d0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	p := stockedPond(t, db, 5000, d0)

	_, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 d0.AddDate(0, 0, 60),
		WeightKg:             100,
		Count:                800,
		PricePerKg:           25000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)

	_, err = RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 d0.AddDate(0, 0, 90),
		WeightKg:             180,
		Count:                1200,
		PricePerKg:           26000,
		Type:                 models.HarvestPartial,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)

	harvests, err := ListHarvests(db, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, harvests, 2)

	// Terbaru dulu; tiap baris membawa populasi setelah panennya sendiri,
	// bukan populasi kolam sekarang.
	assert.Equal(t, int64(3000), harvests[0].PopulationEvent.ResultingTotal)
	assert.Equal(t, int64(4200), harvests[1].PopulationEvent.ResultingTotal)
}

func TestRecordHarvestTotalType(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	p := stockedPond(t, db, 1000, now.AddDate(0, 0, -90))

	h, err := RecordHarvest(db, HarvestInput{
		PondID:               p.ID,
		Date:                 now,
		WeightKg:             150,
		Count:                1000,
		PricePerKg:           30000,
		Type:                 models.HarvestTotal,
		GrowthRateGramPerDay: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.HarvestTotal, h.Type)

	var fresh models.Pond
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, int64(0), fresh.Population)

	var ev models.PopulationEvent
	require.NoError(t, db.First(&ev, h.PopulationEventID).Error)
	assert.Equal(t, "panen total", ev.Reason)
}
