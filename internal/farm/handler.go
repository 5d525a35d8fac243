package farm

import (
	"strings"

	"tambak-backend/internal/auth"
	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFarmRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateFarmRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type AddMemberRequest struct {
	Email string          `json:"email"`
	Role  models.FarmRole `json:"role"`
}

type FarmResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Role    string `json:"role"` // role user request pada tambak ini
}

type MemberResponse struct {
	UserID uint            `json:"user_id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.FarmRole `json:"role"`
}

// POST /api/farms
func CreateFarmHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateFarmRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama tambak wajib diisi")
		}

		f := models.Farm{
			Name:    body.Name,
			Address: body.Address,
			Phone:   body.Phone,
		}

		// Tambak + keanggotaan owner dibuat satu transaksi
		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa dimulai")
		}

		if err := tx.Create(&f).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Tambak tidak bisa dibuat")
		}

		member := models.FarmMember{FarmID: f.ID, UserID: userID, Role: models.RoleOwner}
		if err := tx.Create(&member).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Keanggotaan owner tidak bisa dibuat")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diselesaikan")
		}

		return c.Status(fiber.StatusCreated).JSON(FarmResponse{
			ID:      f.ID,
			Name:    f.Name,
			Address: f.Address,
			Phone:   f.Phone,
			Role:    string(models.RoleOwner),
		})
	}
}

// GET /api/farms — semua tambak yang user-nya jadi anggota
func ListFarmsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var memberships []models.FarmMember
		if err := database.DB.Preload("Farm").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tambak tidak bisa di-list")
		}

		resp := make([]FarmResponse, 0, len(memberships))
		for _, m := range memberships {
			resp = append(resp, FarmResponse{
				ID:      m.Farm.ID,
				Name:    m.Farm.Name,
				Address: m.Farm.Address,
				Phone:   m.Farm.Phone,
				Role:    string(m.Role),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/farms/:id
func GetFarmHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var f models.Farm
		if err := database.DB.First(&f, farmID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tambak tidak ditemukan")
		}

		userID, _ := auth.UserID(c)
		role, _ := RoleOf(database.DB, farmID, userID)

		return c.JSON(FarmResponse{
			ID:      f.ID,
			Name:    f.Name,
			Address: f.Address,
			Phone:   f.Phone,
			Role:    string(role),
		})
	}
}

// PUT /api/farms/:id
func UpdateFarmHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleAdmin); err != nil {
			return err
		}

		var f models.Farm
		if err := database.DB.First(&f, farmID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tambak tidak ditemukan")
		}

		var body UpdateFarmRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama tambak tidak boleh kosong")
			}
			f.Name = name
		}
		if body.Address != nil {
			f.Address = *body.Address
		}
		if body.Phone != nil {
			f.Phone = *body.Phone
		}

		if err := database.DB.Save(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tambak tidak bisa diupdate")
		}

		userID, _ := auth.UserID(c)
		role, _ := RoleOf(database.DB, farmID, userID)

		return c.JSON(FarmResponse{
			ID:      f.ID,
			Name:    f.Name,
			Address: f.Address,
			Phone:   f.Phone,
			Role:    string(role),
		})
	}
}

// DELETE /api/farms/:id — hanya owner, dan hanya selama belum punya kolam
func DeleteFarmHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleOwner); err != nil {
			return err
		}

		var pondCount int64
		database.DB.Model(&models.Pond{}).Where("farm_id = ?", farmID).Count(&pondCount)
		if pondCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Tambak masih punya kolam, tidak bisa dihapus")
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa dimulai")
		}
		if err := tx.Where("farm_id = ?", farmID).Delete(&models.FarmMember{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Keanggotaan tidak bisa dihapus")
		}
		if err := tx.Delete(&models.Farm{}, farmID).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Tambak tidak bisa dihapus")
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diselesaikan")
		}

		return c.JSON(fiber.Map{"deleted": farmID})
	}
}

// POST /api/farms/:id/members
func AddMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleAdmin); err != nil {
			return err
		}

		var body AddMemberRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email wajib diisi")
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Role harus salah satu dari owner/admin/operator/viewer")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User dengan email itu tidak ditemukan")
		}

		var count int64
		database.DB.Model(&models.FarmMember{}).
			Where("farm_id = ? AND user_id = ?", farmID, user.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User sudah jadi anggota tambak ini")
		}

		member := models.FarmMember{FarmID: farmID, UserID: user.ID, Role: body.Role}
		if err := database.DB.Create(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Anggota tidak bisa ditambahkan")
		}

		return c.Status(fiber.StatusCreated).JSON(MemberResponse{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   member.Role,
		})
	}
}

// GET /api/farms/:id/members
func ListMembersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var members []models.FarmMember
		if err := database.DB.Preload("User").Where("farm_id = ?", farmID).Find(&members).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Anggota tidak bisa di-list")
		}

		resp := make([]MemberResponse, 0, len(members))
		for _, m := range members {
			resp = append(resp, MemberResponse{
				UserID: m.UserID,
				Name:   m.User.Name,
				Email:  m.User.Email,
				Role:   m.Role,
			})
		}

		return c.JSON(resp)
	}
}

// DELETE /api/farms/:id/members/:userID
func RemoveMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := RequireRole(c, farmID, models.RoleAdmin); err != nil {
			return err
		}

		targetID, err := c.ParamsInt("userID")
		if err != nil || targetID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "userID tidak valid")
		}

		var member models.FarmMember
		if err := database.DB.Where("farm_id = ? AND user_id = ?", farmID, targetID).First(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Anggota tidak ditemukan")
		}

		// Owner terakhir tidak boleh dilepas, tambak jadi yatim
		if member.Role == models.RoleOwner {
			var ownerCount int64
			database.DB.Model(&models.FarmMember{}).
				Where("farm_id = ? AND role = ?", farmID, models.RoleOwner).
				Count(&ownerCount)
			if ownerCount <= 1 {
				return fiber.NewError(fiber.StatusConflict, "Owner terakhir tidak bisa dihapus")
			}
		}

		if err := database.DB.Delete(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Anggota tidak bisa dihapus")
		}

		return c.JSON(fiber.Map{"removed": targetID})
	}
}

func parseFarmID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tambak tidak valid")
	}
	return uint(id), nil
}
