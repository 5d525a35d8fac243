package pond

import (
	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockPondRequest struct {
	Count int64  `json:"count"`
	Date  string `json:"date"` // "2025-12-09", kosong = hari ini
	Note  string `json:"note"`
}

type CreatePopulationEventRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

type PopulationEventResponse struct {
	ID             uint   `json:"id"`
	PondID         uint   `json:"pond_id"`
	Date           string `json:"date"`
	Delta          int64  `json:"delta"`
	ResultingTotal int64  `json:"resulting_total"`
	Reason         string `json:"reason"`
	CreatedAt      string `json:"created_at"`
}

func populationEventToResponse(ev models.PopulationEvent) PopulationEventResponse {
	return PopulationEventResponse{
		ID:             ev.ID,
		PondID:         ev.PondID,
		Date:           ev.Date.Format("2006-01-02"),
		Delta:          ev.Delta,
		ResultingTotal: ev.ResultingTotal,
		Reason:         ev.Reason,
		CreatedAt:      ev.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/ponds/:id/stocking
func StockPondHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body StockPondRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		at, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		ev, err := StockPond(database.DB, p.ID, body.Count, body.Note, at)
		if err != nil {
			return HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(populationEventToResponse(*ev))
	}
}

// POST /api/ponds/:id/population-events — koreksi manual (mortalitas, salah hitung)
func CreatePopulationEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body CreatePopulationEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Reason == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Alasan koreksi wajib diisi")
		}

		at, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		ev, err := ApplyDelta(database.DB, p.ID, body.Delta, body.Reason, at)
		if err != nil {
			return HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(populationEventToResponse(*ev))
	}
}

// GET /api/ponds/:id/population-events?limit=&offset=
func ListPopulationEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}

		events, err := ListEvents(database.DB, p.ID, c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ledger populasi tidak bisa di-list")
		}

		resp := make([]PopulationEventResponse, 0, len(events))
		for _, ev := range events {
			resp = append(resp, populationEventToResponse(ev))
		}
		return c.JSON(resp)
	}
}
