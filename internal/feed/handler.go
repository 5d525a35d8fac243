package feed

import (
	"time"

	"tambak-backend/internal/database"
	"tambak-backend/internal/farm"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFeedRecordRequest struct {
	Date     string  `json:"date"` // "2025-12-09", kosong = hari ini
	WeightKg float64 `json:"weight_kg"`
	FeedName string  `json:"feed_name"`
	Note     string  `json:"note"`
}

type FeedRecordResponse struct {
	ID       uint    `json:"id"`
	PondID   uint    `json:"pond_id"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
	FeedName string  `json:"feed_name"`
	Note     string  `json:"note"`
}

// Ambil kolam dari :id dan cek role user pada tambak pemiliknya.
func pondForRequest(c *fiber.Ctx, min models.FarmRole) (*models.Pond, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID kolam tidak valid")
	}

	var p models.Pond
	if err := database.DB.First(&p, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kolam tidak ditemukan")
	}

	if err := farm.RequireRole(c, p.FarmID, min); err != nil {
		return nil, err
	}
	return &p, nil
}

// POST /api/ponds/:id/feeds
func CreateFeedRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body CreateFeedRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.WeightKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight_kg harus lebih dari 0")
		}

		at := time.Now()
		if body.Date != "" {
			at, err = time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
			}
		}

		record := models.FeedRecord{
			PondID:   p.ID,
			Date:     at,
			WeightKg: body.WeightKg,
			FeedName: body.FeedName,
			Note:     body.Note,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Catatan pakan tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(feedRecordToResponse(record))
	}
}

// GET /api/ponds/:id/feeds
func ListFeedRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		var records []models.FeedRecord
		if err := database.DB.
			Where("pond_id = ?", p.ID).
			Order("date DESC, id DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Catatan pakan tidak bisa di-list")
		}

		resp := make([]FeedRecordResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, feedRecordToResponse(r))
		}
		return c.JSON(resp)
	}
}

// GET /api/ponds/:id/feeds/total
func TotalFeedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		total, err := TotalFeedWeight(database.DB, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Total pakan tidak bisa dihitung")
		}

		return c.JSON(fiber.Map{
			"pond_id":       p.ID,
			"total_feed_kg": total,
		})
	}
}

func feedRecordToResponse(r models.FeedRecord) FeedRecordResponse {
	return FeedRecordResponse{
		ID:       r.ID,
		PondID:   r.PondID,
		Date:     r.Date.Format("2006-01-02"),
		WeightKg: r.WeightKg,
		FeedName: r.FeedName,
		Note:     r.Note,
	}
}
