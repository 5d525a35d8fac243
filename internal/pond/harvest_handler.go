package pond

import (
	"tambak-backend/internal/config"
	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateHarvestRequest struct {
	Date       string  `json:"date"`
	WeightKg   float64 `json:"weight_kg"`
	Count      int64   `json:"count"`
	PricePerKg float64 `json:"price_per_kg"`
	Type       string  `json:"type"` // "parsial" / "total"
	Note       string  `json:"note"`
	BuyerID    *uint   `json:"buyer_id"` // opsional: sekalian catat penjualan
}

type HarvestResponse struct {
	ID                  uint    `json:"id"`
	Reference           string  `json:"reference"`
	PondID              uint    `json:"pond_id"`
	Date                string  `json:"date"`
	WeightKg            float64 `json:"weight_kg"`
	Count               int64   `json:"count"`
	PricePerKg          float64 `json:"price_per_kg"`
	Total               float64 `json:"total"`
	Type                string  `json:"type"`
	Note                string  `json:"note"`
	RemainingPopulation int64   `json:"remaining_population"` // populasi tepat setelah panen ini
	SaleID              *uint   `json:"sale_id,omitempty"`
}

// POST /api/ponds/:id/harvests
func CreateHarvestHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body CreateHarvestRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		at, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		harvestType := models.HarvestType(body.Type)
		if body.Type == "" {
			harvestType = models.HarvestPartial
		}

		h, err := RecordHarvest(database.DB, HarvestInput{
			PondID:               p.ID,
			Date:                 at,
			WeightKg:             body.WeightKg,
			Count:                body.Count,
			PricePerKg:           body.PricePerKg,
			Type:                 harvestType,
			Note:                 body.Note,
			BuyerID:              body.BuyerID,
			GrowthRateGramPerDay: cfg.GrowthRateGramPerDay,
		})
		if err != nil {
			return HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(harvestToResponse(*h))
	}
}

// GET /api/ponds/:id/harvests?limit=&offset=
func ListHarvestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		events, err := ListHarvests(database.DB, p.ID, c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Riwayat panen tidak bisa di-list")
		}

		resp := make([]HarvestResponse, 0, len(events))
		for _, h := range events {
			resp = append(resp, harvestToResponse(h))
		}
		return c.JSON(resp)
	}
}

func harvestToResponse(h models.HarvestEvent) HarvestResponse {
	return HarvestResponse{
		ID:                  h.ID,
		Reference:           h.Reference,
		PondID:              h.PondID,
		Date:                h.Date.Format("2006-01-02"),
		WeightKg:            h.WeightKg,
		Count:               h.Count,
		PricePerKg:          h.PricePerKg,
		Total:               h.WeightKg * h.PricePerKg,
		Type:                string(h.Type),
		Note:                h.Note,
		RemainingPopulation: h.PopulationEvent.ResultingTotal,
		SaleID:              h.SaleID,
	}
}
