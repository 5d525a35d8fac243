package farm

import (
	"errors"

	"tambak-backend/internal/auth"
	"tambak-backend/internal/database"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var ErrNotMember = errors.New("bukan anggota tambak ini")

// RoleOf mengembalikan role user pada satu tambak.
func RoleOf(db *gorm.DB, farmID, userID uint) (models.FarmRole, error) {
	var member models.FarmMember
	err := db.Where("farm_id = ? AND user_id = ?", farmID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return member.Role, nil
}

// RequireRole memastikan user request minimal punya role `min` pada tambak.
// Viewer hanya boleh operasi baca; mutasi minta operator ke atas.
func RequireRole(c *fiber.Ctx, farmID uint, min models.FarmRole) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	role, err := RoleOf(database.DB, farmID, userID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return fiber.NewError(fiber.StatusForbidden, "Anda bukan anggota tambak ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Keanggotaan tidak bisa diperiksa")
	}

	if !role.Allows(min) {
		return fiber.NewError(fiber.StatusForbidden, "Role Anda tidak cukup untuk operasi ini")
	}
	return nil
}
