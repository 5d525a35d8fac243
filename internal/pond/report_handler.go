package pond

import (
	"time"

	"tambak-backend/internal/config"
	"tambak-backend/internal/database"
	"tambak-backend/internal/feed"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClassificationResponse struct {
	PondID           uint    `json:"pond_id"`
	Tier             string  `json:"tier"`
	Source           string  `json:"source"`
	DensityCount     float64 `json:"density_count"`   // ekor/m3
	DensityBiomass   float64 `json:"density_biomass"` // kg/m3
	BiomassKg        float64 `json:"biomass_kg"`
	InsufficientData bool    `json:"insufficient_data"`
}

type ProjectionResponse struct {
	PondID     uint   `json:"pond_id"`
	Applicable bool   `json:"applicable"`
	Message    string `json:"message,omitempty"`
	Calibrated bool   `json:"calibrated"`

	DaysSinceStocking    int     `json:"days_since_stocking"`
	CurrentWeightGram    float64 `json:"current_weight_gram"`
	BiomassKg            float64 `json:"biomass_kg"`
	TargetWeightGram     float64 `json:"target_weight_gram"`
	DaysRemaining        int     `json:"days_remaining"`
	EstimatedHarvestDate string  `json:"estimated_harvest_date,omitempty"`

	SurvivingCount     int64   `json:"surviving_count"`
	ProjectedRevenue   float64 `json:"projected_revenue"`
	TotalFeedKg        float64 `json:"total_feed_kg"`
	FeedCost           float64 `json:"feed_cost"`
	ProjectedProfit    float64 `json:"projected_profit"`
	DailyFeedKg          float64 `json:"daily_feed_kg"` // rekomendasi pakan harian
	GrowthRateGramPerDay float64 `json:"growth_rate_gram_per_day"`
}

// GET /api/ponds/:id/classification
// Selalu dihitung ulang dari state sekarang; cache di record kolam cuma hint.
func ClassificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		latest, err := LatestSampling(database.DB, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sampling terakhir tidak bisa diambil")
		}

		cls := Classify(*p, latest)
		return c.JSON(ClassificationResponse{
			PondID:           p.ID,
			Tier:             string(cls.Tier),
			Source:           string(cls.Source),
			DensityCount:     cls.DensityCount,
			DensityBiomass:   cls.DensityBiomass,
			BiomassKg:        cls.BiomassKg,
			InsufficientData: cls.InsufficientData,
		})
	}
}

// GET /api/ponds/:id/projection?growth_rate=&target_weight=&price_per_kg=&survival_rate=&feed_cost_per_kg=
// Read-side murni, tidak pernah menulis apa pun.
func ProjectionHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		params := ProjectionParams{
			Now:                  time.Now(),
			GrowthRateGramPerDay: c.QueryFloat("growth_rate", cfg.GrowthRateGramPerDay),
			TargetWeightGram:     c.QueryFloat("target_weight", cfg.TargetWeightGram),
			PricePerKg:           c.QueryFloat("price_per_kg", 0),
			SurvivalRate:         c.QueryFloat("survival_rate", cfg.SurvivalRate),
			StockingWeightGram:   cfg.StockingWeightGram,
			FeedCostPerKg:        c.QueryFloat("feed_cost_per_kg", cfg.FeedCostPerKg),
		}
		if params.GrowthRateGramPerDay <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "growth_rate harus lebih dari 0")
		}
		if params.TargetWeightGram <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "target_weight harus lebih dari 0")
		}
		if params.SurvivalRate <= 0 || params.SurvivalRate > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "survival_rate harus di rentang (0, 1]")
		}

		totalFeed, err := feed.TotalFeedWeight(database.DB, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Total pakan tidak bisa dihitung")
		}
		params.TotalFeedKg = totalFeed

		latest, err := LatestSampling(database.DB, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sampling terakhir tidak bisa diambil")
		}

		proj := Project(*p, latest, params)
		if !proj.Applicable {
			return c.JSON(ProjectionResponse{
				PondID:     p.ID,
				Applicable: false,
				Message:    "Kolam belum ditebar, proyeksi belum bisa dihitung",
			})
		}

		return c.JSON(ProjectionResponse{
			PondID:               p.ID,
			Applicable:           true,
			Calibrated:           proj.Calibrated,
			DaysSinceStocking:    proj.DaysSinceStocking,
			CurrentWeightGram:    proj.CurrentWeightGram,
			BiomassKg:            proj.BiomassKg,
			TargetWeightGram:     proj.TargetWeightGram,
			DaysRemaining:        proj.DaysRemaining,
			EstimatedHarvestDate: proj.EstimatedHarvestDate.Format("2006-01-02"),
			SurvivingCount:       proj.SurvivingCount,
			ProjectedRevenue:     proj.ProjectedRevenue,
			TotalFeedKg:          params.TotalFeedKg,
			FeedCost:             proj.FeedCost,
			ProjectedProfit:      proj.ProjectedProfit,
			DailyFeedKg:          feed.RecommendDaily(proj.CurrentWeightGram, proj.BiomassKg),
			GrowthRateGramPerDay: params.GrowthRateGramPerDay,
		})
	}
}
