package expense

import (
	"strings"
	"time"

	"tambak-backend/internal/database"
	"tambak-backend/internal/farm"
	"tambak-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseCategoryRequest struct {
	Name string `json:"name"`
}

type ExpenseCategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	CategoryID  uint    `json:"category_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	FarmID      uint    `json:"farm_id"`
	CategoryID  uint    `json:"category_id"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type MonthlyExpenseSummaryItem struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
}

type MonthlyExpenseSummaryResponse struct {
	FarmID     uint                        `json:"farm_id"`
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Items      []MonthlyExpenseSummaryItem `json:"items"`
	GrandTotal float64                     `json:"grand_total"`
}

func parseFarmID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tambak tidak valid")
	}
	return uint(id), nil
}

// POST /api/farms/:id/expense-categories
func CreateExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleAdmin); err != nil {
			return err
		}

		var body CreateExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kategori wajib diisi")
		}

		cat := models.ExpenseCategory{FarmID: farmID, Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
	}
}

// GET /api/farms/:id/expense-categories
func ListExpenseCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var cats []models.ExpenseCategory
		if err := database.DB.Where("farm_id = ?", farmID).Order("name ASC").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa di-list")
		}

		resp := make([]ExpenseCategoryResponse, 0, len(cats))
		for _, cat := range cats {
			resp = append(resp, ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(resp)
	}
}

// POST /api/farms/:id/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleOperator); err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.CategoryID == 0 || body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "category_id wajib diisi, amount harus lebih dari 0")
		}

		var cat models.ExpenseCategory
		if err := database.DB.Where("id = ? AND farm_id = ?", body.CategoryID, farmID).First(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori tidak ditemukan di tambak ini")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		exp := models.Expense{
			FarmID:      farmID,
			CategoryID:  body.CategoryID,
			Date:        d,
			Amount:      body.Amount,
			Description: body.Description,
		}
		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengeluaran tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(ExpenseResponse{
			ID:          exp.ID,
			FarmID:      exp.FarmID,
			CategoryID:  exp.CategoryID,
			Category:    cat.Name,
			Date:        exp.Date.Format("2006-01-02"),
			Amount:      exp.Amount,
			Description: exp.Description,
		})
	}
}

// GET /api/farms/:id/expenses
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		var expenses []models.Expense
		if err := database.DB.
			Preload("Category").
			Where("farm_id = ?", farmID).
			Order("date DESC, id DESC").
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengeluaran tidak bisa di-list")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for _, exp := range expenses {
			resp = append(resp, ExpenseResponse{
				ID:          exp.ID,
				FarmID:      exp.FarmID,
				CategoryID:  exp.CategoryID,
				Category:    exp.Category.Name,
				Date:        exp.Date.Format("2006-01-02"),
				Amount:      exp.Amount,
				Description: exp.Description,
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/farms/:id/expenses/summary/monthly?year=&month=
func MonthlyExpenseSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := parseFarmID(c)
		if err != nil {
			return err
		}
		if err := farm.RequireRole(c, farmID, models.RoleViewer); err != nil {
			return err
		}

		now := time.Now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month harus 1-12")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		var expenses []models.Expense
		if err := database.DB.
			Preload("Category").
			Where("farm_id = ? AND date >= ? AND date < ?", farmID, start, end).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan tidak bisa dihitung")
		}

		totals := map[uint]*MonthlyExpenseSummaryItem{}
		grand := 0.0
		for _, exp := range expenses {
			item, ok := totals[exp.CategoryID]
			if !ok {
				item = &MonthlyExpenseSummaryItem{
					CategoryID:   exp.CategoryID,
					CategoryName: exp.Category.Name,
				}
				totals[exp.CategoryID] = item
			}
			item.Total += exp.Amount
			grand += exp.Amount
		}

		items := make([]MonthlyExpenseSummaryItem, 0, len(totals))
		for _, item := range totals {
			items = append(items, *item)
		}

		return c.JSON(MonthlyExpenseSummaryResponse{
			FarmID:     farmID,
			Year:       year,
			Month:      month,
			Items:      items,
			GrandTotal: grand,
		})
	}
}
