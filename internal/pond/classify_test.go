package pond

import (
	"testing"
	"time"

	"tambak-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func pondWithVolume(length, width, depth float64, population int64) models.Pond {
	return models.Pond{
		LengthM:    length,
		WidthM:     width,
		DepthM:     depth,
		Population: population,
	}
}

func TestClassifyCountBasis(t *testing.T) {
	// Volume 100 m3, populasi 6000, belum ada sampling -> 60 ekor/m3
	p := pondWithVolume(10, 5, 2, 6000)

	cls := Classify(p, nil)

	assert.Equal(t, models.StatusWaspada, cls.Tier)
	assert.Equal(t, SourceCount, cls.Source)
	assert.InDelta(t, 60.0, cls.DensityCount, 1e-9)
	assert.False(t, cls.InsufficientData)
}

func TestClassifyBiomassBasisOverridesCount(t *testing.T) {
	// Kolam yang sama, sampling 10 ekor/kg (100 g/ekor): biomassa 600 kg,
	// kepadatan biomassa 6 kg/m3 -> aman, walau basis ekor bilang waspada.
	p := pondWithVolume(10, 5, 2, 6000)
	sampling := &models.SamplingEvent{FishPerKg: 10, Date: time.Now()}

	cls := Classify(p, sampling)

	assert.Equal(t, models.StatusAman, cls.Tier)
	assert.Equal(t, SourceBiomass, cls.Source)
	assert.InDelta(t, 600.0, cls.BiomassKg, 1e-9)
	assert.InDelta(t, 6.0, cls.DensityBiomass, 1e-9)
}

func TestClassifyCountThresholds(t *testing.T) {
	cases := []struct {
		population int64
		want       models.PondStatus
	}{
		{50, models.StatusAman},     // ambang tidak inklusif
		{51, models.StatusWaspada},
		{100, models.StatusWaspada},
		{101, models.StatusBerisiko},
	}
	for _, tc := range cases {
		p := pondWithVolume(1, 1, 1, tc.population)
		assert.Equal(t, tc.want, Classify(p, nil).Tier, "populasi %d", tc.population)
	}
}

func TestClassifyBiomassThresholds(t *testing.T) {
	// Volume 1 m3, 100 g/ekor: biomassa kg = populasi / 10
	cases := []struct {
		population int64
		want       models.PondStatus
	}{
		{100, models.StatusAman},     // 10 kg/m3, ambang tidak inklusif
		{101, models.StatusWaspada},  // 10.1 kg/m3
		{200, models.StatusWaspada},  // 20 kg/m3
		{201, models.StatusBerisiko}, // 20.1 kg/m3
	}
	sampling := &models.SamplingEvent{FishPerKg: 10, Date: time.Now()}
	for _, tc := range cases {
		p := pondWithVolume(1, 1, 1, tc.population)
		assert.Equal(t, tc.want, Classify(p, sampling).Tier, "populasi %d", tc.population)
	}
}

func TestClassifyWithoutGeometry(t *testing.T) {
	p := models.Pond{Population: 9999}

	cls := Classify(p, nil)

	assert.True(t, cls.InsufficientData)
	assert.Equal(t, models.StatusAman, cls.Tier)
	assert.Zero(t, cls.DensityCount)
	assert.Zero(t, cls.DensityBiomass)

	// Biomassa tetap dihitung kalau ada sampling; hanya kepadatannya yang
	// tidak terdefinisi.
	cls = Classify(p, &models.SamplingEvent{FishPerKg: 10})
	assert.True(t, cls.InsufficientData)
	assert.Equal(t, models.StatusAman, cls.Tier)
	assert.InDelta(t, 999.9, cls.BiomassKg, 1e-9)
}

func TestClassifyDeterministic(t *testing.T) {
	p := pondWithVolume(10, 5, 2, 6000)
	sampling := &models.SamplingEvent{FishPerKg: 7.5, Date: time.Now()}

	first := Classify(p, sampling)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(p, sampling))
	}
}
