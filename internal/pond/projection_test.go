package pond

import (
	"testing"
	"time"

	"tambak-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(now time.Time) ProjectionParams {
	return ProjectionParams{
		Now:                  now,
		GrowthRateGramPerDay: 2,
		TargetWeightGram:     150,
		PricePerKg:           30000,
		SurvivalRate:         0.85,
		StockingWeightGram:   5,
		FeedCostPerKg:        16000,
	}
}

func TestProjectNotApplicableBeforeStocking(t *testing.T) {
	p := models.Pond{Population: 1000}

	proj := Project(p, nil, testParams(time.Now()))

	assert.False(t, proj.Applicable)
	assert.Zero(t, proj.CurrentWeightGram)
}

func TestProjectCalibratedFromSampling(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stocked := now.AddDate(0, 0, -60)
	p := models.Pond{Population: 1000, StockingDate: &stocked}

	// Sampling 10 hari lalu, 100 g/ekor, laju 2 g/hari -> 120 g sekarang.
	sampling := &models.SamplingEvent{FishPerKg: 10, Date: now.AddDate(0, 0, -10)}

	proj := Project(p, sampling, testParams(now))

	require.True(t, proj.Applicable)
	assert.True(t, proj.Calibrated)
	assert.Equal(t, 60, proj.DaysSinceStocking)
	assert.InDelta(t, 120.0, proj.CurrentWeightGram, 1e-9)
	assert.InDelta(t, 120.0, proj.BiomassKg, 1e-9)

	// Sisa 30 g pada 2 g/hari.
	assert.Equal(t, 15, proj.DaysRemaining)
	assert.Equal(t, now.AddDate(0, 0, 15), proj.EstimatedHarvestDate)
}

func TestProjectFallbackWithoutSampling(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stocked := now.AddDate(0, 0, -20)
	p := models.Pond{Population: 1000, StockingDate: &stocked}

	proj := Project(p, nil, testParams(now))

	require.True(t, proj.Applicable)
	assert.False(t, proj.Calibrated)
	// Berat benih 5 g + 20 hari x 2 g/hari.
	assert.InDelta(t, 45.0, proj.CurrentWeightGram, 1e-9)
}

func TestProjectReadyForHarvest(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stocked := now.AddDate(0, 0, -90)
	p := models.Pond{Population: 1000, StockingDate: &stocked}

	// 200 g/ekor, sudah melewati target 150 g.
	sampling := &models.SamplingEvent{FishPerKg: 5, Date: now}

	proj := Project(p, sampling, testParams(now))

	assert.Equal(t, 0, proj.DaysRemaining)
	assert.Equal(t, now, proj.EstimatedHarvestDate)
}

func TestProjectEconomics(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stocked := now.AddDate(0, 0, -30)
	p := models.Pond{Population: 1000, StockingDate: &stocked}

	params := testParams(now)
	params.TotalFeedKg = 100

	proj := Project(p, nil, params)

	// floor(1000 x 0.85) ekor x 0.15 kg x Rp30.000
	assert.Equal(t, int64(850), proj.SurvivingCount)
	assert.InDelta(t, 3825000.0, proj.ProjectedRevenue, 1e-6)
	assert.InDelta(t, 1600000.0, proj.FeedCost, 1e-6)
	assert.InDelta(t, 2225000.0, proj.ProjectedProfit, 1e-6)
}

func TestProjectDeterministic(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stocked := now.AddDate(0, 0, -45)
	p := models.Pond{Population: 4000, StockingDate: &stocked}
	sampling := &models.SamplingEvent{FishPerKg: 12.5, Date: now.AddDate(0, 0, -3)}
	params := testParams(now)

	first := Project(p, sampling, params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Project(p, sampling, params))
	}
}

func TestCurrentBiomassKg(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Pond{Population: 1000}

	_, ok := CurrentBiomassKg(p, nil, now, 2)
	assert.False(t, ok)

	sampling := &models.SamplingEvent{FishPerKg: 10, Date: now.AddDate(0, 0, -10)}
	biomass, ok := CurrentBiomassKg(p, sampling, now, 2)
	require.True(t, ok)
	assert.InDelta(t, 120.0, biomass, 1e-9)
}

func TestDaysBetweenClampsNegative(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, daysBetween(now.AddDate(0, 0, 3), now))
	assert.Equal(t, 3, daysBetween(now.AddDate(0, 0, -3), now))
}
