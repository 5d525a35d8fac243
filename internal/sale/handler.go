package sale

import (
	"strings"

	"tambak-backend/internal/database"
	"tambak-backend/internal/farm"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBuyerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateBuyerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type BuyerResponse struct {
	ID      uint   `json:"id"`
	FarmID  uint   `json:"farm_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SaleResponse struct {
	ID         uint    `json:"id"`
	FarmID     uint    `json:"farm_id"`
	PondID     uint    `json:"pond_id"`
	PondName   string  `json:"pond_name"`
	BuyerID    uint    `json:"buyer_id"`
	BuyerName  string  `json:"buyer_name"`
	Date       string  `json:"date"`
	WeightKg   float64 `json:"weight_kg"`
	PricePerKg float64 `json:"price_per_kg"`
	Count      int64   `json:"count"`
	Total      float64 `json:"total"`
	Note       string  `json:"note"`
}

func parseFarmID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tambak tidak valid")
	}
	return uint(id), nil
}

// POST /api/farms/:id/buyers
func CreateBuyerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleOperator); err != nil {
			return err
		}

		var body CreateBuyerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama pembeli wajib diisi")
		}

		buyer := models.Buyer{
			FarmID:  farmID,
			Name:    body.Name,
			Phone:   body.Phone,
			Address: body.Address,
		}
		if err := database.DB.Create(&buyer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pembeli tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(buyerToResponse(buyer))
	}
}

// GET /api/farms/:id/buyers
func ListBuyersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var buyers []models.Buyer
		if err := database.DB.Where("farm_id = ?", farmID).Order("name ASC").Find(&buyers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pembeli tidak bisa di-list")
		}

		resp := make([]BuyerResponse, 0, len(buyers))
		for _, b := range buyers {
			resp = append(resp, buyerToResponse(b))
		}
		return c.JSON(resp)
	}
}

// PUT /api/buyers/:id
func UpdateBuyerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID pembeli tidak valid")
		}

		var buyer models.Buyer
		if err := database.DB.First(&buyer, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pembeli tidak ditemukan")
		}
		if err := farm.RequireRole(c, buyer.FarmID, models.RoleOperator); err != nil {
			return err
		}

		var body UpdateBuyerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama pembeli tidak boleh kosong")
			}
			buyer.Name = name
		}
		if body.Phone != nil {
			buyer.Phone = *body.Phone
		}
		if body.Address != nil {
			buyer.Address = *body.Address
		}

		if err := database.DB.Save(&buyer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pembeli tidak bisa diupdate")
		}

		return c.JSON(buyerToResponse(buyer))
	}
}

// DELETE /api/buyers/:id
func DeleteBuyerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID pembeli tidak valid")
		}

		var buyer models.Buyer
		if err := database.DB.First(&buyer, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pembeli tidak ditemukan")
		}
		if err := farm.RequireRole(c, buyer.FarmID, models.RoleAdmin); err != nil {
			return err
		}

		var saleCount int64
		database.DB.Model(&models.Sale{}).Where("buyer_id = ?", buyer.ID).Count(&saleCount)
		if saleCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Pembeli masih punya riwayat penjualan, tidak bisa dihapus")
		}

		if err := database.DB.Delete(&buyer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pembeli tidak bisa dihapus")
		}
		return c.JSON(fiber.Map{"deleted": buyer.ID})
	}
}

// GET /api/farms/:id/sales
// Penjualan dibuat lewat hand-off panen; di sini cuma dibaca.
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var sales []models.Sale
		if err := database.DB.
			Preload("Pond").
			Preload("Buyer").
			Where("farm_id = ?", farmID).
			Order("date DESC, id DESC").
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Penjualan tidak bisa di-list")
		}

		resp := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			resp = append(resp, SaleResponse{
				ID:         s.ID,
				FarmID:     s.FarmID,
				PondID:     s.PondID,
				PondName:   s.Pond.Name,
				BuyerID:    s.BuyerID,
				BuyerName:  s.Buyer.Name,
				Date:       s.Date.Format("2006-01-02"),
				WeightKg:   s.WeightKg,
				PricePerKg: s.PricePerKg,
				Count:      s.Count,
				Total:      s.Total,
				Note:       s.Note,
			})
		}
		return c.JSON(resp)
	}
}

func buyerToResponse(b models.Buyer) BuyerResponse {
	return BuyerResponse{
		ID:      b.ID,
		FarmID:  b.FarmID,
		Name:    b.Name,
		Phone:   b.Phone,
		Address: b.Address,
	}
}
