package pond

import (
	"strings"
	"time"

	"tambak-backend/internal/database"
	"tambak-backend/internal/farm"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePondRequest struct {
	FarmID  uint    `json:"farm_id"`
	Name    string  `json:"name"`
	LengthM float64 `json:"length_m"`
	WidthM  float64 `json:"width_m"`
	DepthM  float64 `json:"depth_m"`
}

type UpdatePondRequest struct {
	Name    *string  `json:"name"`
	LengthM *float64 `json:"length_m"`
	WidthM  *float64 `json:"width_m"`
	DepthM  *float64 `json:"depth_m"`
	// Status manual override; menang sampai recompute otomatis berikutnya.
	Status *models.PondStatus `json:"status"`
}

type PondResponse struct {
	ID           uint    `json:"id"`
	FarmID       uint    `json:"farm_id"`
	Name         string  `json:"name"`
	LengthM      float64 `json:"length_m"`
	WidthM       float64 `json:"width_m"`
	DepthM       float64 `json:"depth_m"`
	VolumeM3     float64 `json:"volume_m3"`
	StockingDate string  `json:"stocking_date,omitempty"`
	Population   int64   `json:"population"`
	Status       string  `json:"status"`
	StatusSource string  `json:"status_source"`
}

func pondToResponse(p models.Pond) PondResponse {
	resp := PondResponse{
		ID:           p.ID,
		FarmID:       p.FarmID,
		Name:         p.Name,
		LengthM:      p.LengthM,
		WidthM:       p.WidthM,
		DepthM:       p.DepthM,
		VolumeM3:     p.VolumeM3(),
		Population:   p.Population,
		Status:       string(p.Status),
		StatusSource: string(p.StatusSource),
	}
	if p.StockingDate != nil {
		resp.StockingDate = p.StockingDate.Format("2006-01-02")
	}
	return resp
}

// pondForRequest mengambil kolam dari path param :id dan memastikan user punya
// role minimal pada tambak pemiliknya.
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

// parseDate menerima "YYYY-MM-DD"; kosong berarti sekarang.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/ponds
func CreatePondHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePondRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.FarmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "farm_id wajib diisi")
		}
		if err := farm.RequireRole(c, body.FarmID, models.RoleOperator); err != nil {
			return err
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kolam wajib diisi")
		}

		// Geometri boleh kosong (diisi belakangan) tapi kalau diisi harus
		// lengkap dan semua dimensinya positif.
		dims := []float64{body.LengthM, body.WidthM, body.DepthM}
		anySet := false
		for _, d := range dims {
			if d != 0 {
				anySet = true
			}
		}
		if anySet {
			for _, d := range dims {
				if d <= 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Panjang, lebar, dan dalam harus semuanya lebih dari 0")
				}
			}
		}

		p := models.Pond{
			FarmID:       body.FarmID,
			Name:         body.Name,
			LengthM:      body.LengthM,
			WidthM:       body.WidthM,
			DepthM:       body.DepthM,
			Status:       models.StatusAman,
			StatusSource: models.StatusSourceAuto,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kolam tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(pondToResponse(p))
	}
}

// GET /api/ponds?farm_id=
func ListPondsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID := uint(c.QueryInt("farm_id"))
		if farmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "farm_id wajib diisi")
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var ponds []models.Pond
		if err := database.DB.Where("farm_id = ?", farmID).Order("name ASC").Find(&ponds).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kolam tidak bisa di-list")
		}

		resp := make([]PondResponse, 0, len(ponds))
		for _, p := range ponds {
			resp = append(resp, pondToResponse(p))
		}
		return c.JSON(resp)
	}
}

// GET /api/ponds/:id
func GetPondHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleViewer)
		if err != nil {
			return err
		}
		return c.JSON(pondToResponse(*p))
	}
}

// PUT /api/ponds/:id — geometri dan/atau override status manual
func UpdatePondHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleOperator)
		if err != nil {
			return err
		}

		var body UpdatePondRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		updated, err := UpdatePond(database.DB, p.ID, PondUpdate{
			Name:    body.Name,
			LengthM: body.LengthM,
			WidthM:  body.WidthM,
			DepthM:  body.DepthM,
			Status:  body.Status,
		})
		if err != nil {
			return HTTPError(err)
		}

		return c.JSON(pondToResponse(*updated))
	}
}

// DELETE /api/ponds/:id — ditolak selama kolam masih punya riwayat ledger
func DeletePondHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pondForRequest(c, models.RoleAdmin)
		if err != nil {
			return err
		}

		var eventCount int64
		database.DB.Model(&models.PopulationEvent{}).Where("pond_id = ?", p.ID).Count(&eventCount)
		var samplingCount int64
		database.DB.Model(&models.SamplingEvent{}).Where("pond_id = ?", p.ID).Count(&samplingCount)
		if eventCount > 0 || samplingCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Kolam masih punya riwayat ledger, tidak bisa dihapus")
		}

		if err := database.DB.Delete(&models.Pond{}, p.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kolam tidak bisa dihapus")
		}
		return c.JSON(fiber.Map{"deleted": p.ID})
	}
}
