package pond

import (
	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSamplingRequest struct {
	FishPerKg    float64 `json:"fish_per_kg"`    // isi salah satu
	GramsPerFish float64 `json:"grams_per_fish"` // dikonversi ke fish_per_kg
	Note         string  `json:"note"`
	Date         string  `json:"date"`
}

type SamplingResponse struct {
	ID           uint    `json:"id"`
	PondID       uint    `json:"pond_id"`
	Date         string  `json:"date"`
	FishPerKg    float64 `json:"fish_per_kg"`
	GramsPerFish float64 `json:"grams_per_fish"`
	Note         string  `json:"note"`
}

func samplingToResponse(ev models.SamplingEvent) SamplingResponse {
	return SamplingResponse{
		ID:           ev.ID,
		PondID:       ev.PondID,
		Date:         ev.Date.Format("2006-01-02"),
		FishPerKg:    ev.FishPerKg,
		GramsPerFish: GramsPerFish(ev.FishPerKg),
		Note:         ev.Note,
	}
}

// POST /api/ponds/:id/samplings
func CreateSamplingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body CreateSamplingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		fishPerKg := body.FishPerKg
		if fishPerKg == 0 && body.GramsPerFish > 0 {
			fishPerKg = FishPerKgFromGrams(body.GramsPerFish)
		}
		if fishPerKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Isi fish_per_kg atau grams_per_fish dengan nilai lebih dari 0")
		}

		at, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		ev, err := RecordSampling(database.DB, p.ID, fishPerKg, body.Note, at)
		if err != nil {
			return HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(samplingToResponse(*ev))
	}
}

// GET /api/ponds/:id/samplings?limit=&offset=
func ListSamplingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		events, err := ListSamplings(database.DB, p.ID, c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ledger sampling tidak bisa di-list")
		}

		resp := make([]SamplingResponse, 0, len(events))
		for _, ev := range events {
			resp = append(resp, samplingToResponse(ev))
		}
		return c.JSON(resp)
	}
}

// GET /api/ponds/:id/samplings/latest
func LatestSamplingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		ev, err := LatestSampling(database.DB, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sampling terakhir tidak bisa diambil")
		}
		if ev == nil {
			return fiber.NewError(fiber.StatusNotFound, "Belum ada sampling untuk kolam ini")
		}

		return c.JSON(samplingToResponse(*ev))
	}
}
