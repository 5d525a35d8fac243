package pond

import (
	"math"
	"time"

	"tambak-backend/internal/models"
)

// ProjectionParams: parameter proyeksi. Growth rate dan target berat datang
// dari konfigurasi atau query param, bukan konstanta engine.
type ProjectionParams struct {
	Now                  time.Time
	GrowthRateGramPerDay float64 // harus > 0
	TargetWeightGram     float64
	PricePerKg           float64
	SurvivalRate         float64 // (0, 1]
	StockingWeightGram   float64 // asumsi berat benih untuk kolam tanpa sampling
	FeedCostPerKg        float64
	TotalFeedKg          float64 // akumulasi pakan dari kolaborator feed record
}

// Projection: hasil proyeksi pertumbuhan dan panen. Murni read-side, dihitung
// ulang tiap panggilan, tidak pernah dipersist.
type Projection struct {
	Applicable bool // false: kolam belum ditebar, proyeksi tidak terdefinisi
	Calibrated bool // false: belum ada sampling, berat dari heuristik tebar

	DaysSinceStocking    int
	CurrentWeightGram    float64
	BiomassKg            float64
	TargetWeightGram     float64
	DaysRemaining        int // 0 = sudah siap panen
	EstimatedHarvestDate time.Time

	SurvivingCount   int64
	ProjectedRevenue float64
	FeedCost         float64
	ProjectedProfit  float64
}

// Project menurunkan estimasi berat sekarang, biomassa, sisa hari ke target,
// dan proyeksi pendapatan dari state ledger. Model pertumbuhannya linear
// (gram/hari); bukan model biologis eksak.
func Project(p models.Pond, latest *models.SamplingEvent, params ProjectionParams) Projection {
	if p.StockingDate == nil {
		return Projection{Applicable: false}
	}

	proj := Projection{
		Applicable:        true,
		TargetWeightGram:  params.TargetWeightGram,
		DaysSinceStocking: daysBetween(*p.StockingDate, params.Now),
	}

	if latest != nil {
		proj.Calibrated = true
		baseWeight := GramsPerFish(latest.FishPerKg)
		daysSinceSampling := daysBetween(latest.Date, params.Now)
		proj.CurrentWeightGram = baseWeight + float64(daysSinceSampling)*params.GrowthRateGramPerDay
	} else {
		proj.CurrentWeightGram = params.StockingWeightGram + float64(proj.DaysSinceStocking)*params.GrowthRateGramPerDay
	}

	proj.BiomassKg = float64(p.Population) * proj.CurrentWeightGram / 1000

	if proj.CurrentWeightGram >= params.TargetWeightGram {
		proj.DaysRemaining = 0
	} else {
		proj.DaysRemaining = int(math.Ceil((params.TargetWeightGram - proj.CurrentWeightGram) / params.GrowthRateGramPerDay))
	}
	proj.EstimatedHarvestDate = params.Now.AddDate(0, 0, proj.DaysRemaining)

	proj.SurvivingCount = int64(math.Floor(float64(p.Population) * params.SurvivalRate))
	proj.ProjectedRevenue = float64(proj.SurvivingCount) * params.TargetWeightGram / 1000 * params.PricePerKg
	proj.FeedCost = params.TotalFeedKg * params.FeedCostPerKg
	proj.ProjectedProfit = proj.ProjectedRevenue - proj.FeedCost

	return proj
}

// CurrentBiomassKg menghitung estimasi biomassa saat ini dari sampling terakhir
// plus pertumbuhan sejak sampling. ok=false kalau belum ada sampling sama
// sekali (biomassa tidak terkalibrasi).
func CurrentBiomassKg(p models.Pond, latest *models.SamplingEvent, now time.Time, growthRateGramPerDay float64) (float64, bool) {
	if latest == nil {
		return 0, false
	}
	weight := GramsPerFish(latest.FishPerKg) + float64(daysBetween(latest.Date, now))*growthRateGramPerDay
	return float64(p.Population) * weight / 1000, true
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
