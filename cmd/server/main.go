package main

import (
	"strings"

	"tambak-backend/internal/auth"
	"tambak-backend/internal/config"
	"tambak-backend/internal/database"
	"tambak-backend/internal/expense"
	"tambak-backend/internal/farm"
	"tambak-backend/internal/feed"
	"tambak-backend/internal/pond"
	"tambak-backend/internal/sale"
	"tambak-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("konfigurasi tidak valid", zap.Error(err))
	}

	database.Init(cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("error tak terduga", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan tak terduga di server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Manajemen tambak & anggota
	protected.Post("/farms", farm.CreateFarmHandler())
	protected.Get("/farms", farm.ListFarmsHandler())
	protected.Get("/farms/:id", farm.GetFarmHandler())
	protected.Put("/farms/:id", farm.UpdateFarmHandler())
	protected.Delete("/farms/:id", farm.DeleteFarmHandler())
	protected.Post("/farms/:id/members", farm.AddMemberHandler())
	protected.Get("/farms/:id/members", farm.ListMembersHandler())
	protected.Delete("/farms/:id/members/:userID", farm.RemoveMemberHandler())

	// Registry kolam
	protected.Post("/ponds", pond.CreatePondHandler())
	protected.Get("/ponds", pond.ListPondsHandler())
	protected.Get("/ponds/:id", pond.GetPondHandler())
	protected.Put("/ponds/:id", pond.UpdatePondHandler())
	protected.Delete("/ponds/:id", pond.DeletePondHandler())

	// Ledger populasi
	protected.Post("/ponds/:id/stocking", pond.StockPondHandler())
	protected.Post("/ponds/:id/population-events", pond.CreatePopulationEventHandler())
	protected.Get("/ponds/:id/population-events", pond.ListPopulationEventsHandler())

	// Ledger sampling
	protected.Post("/ponds/:id/samplings", pond.CreateSamplingHandler())
	protected.Get("/ponds/:id/samplings", pond.ListSamplingsHandler())
	protected.Get("/ponds/:id/samplings/latest", pond.LatestSamplingHandler())

	// Klasifikasi & proyeksi (read-only, selalu dihitung ulang)
	protected.Get("/ponds/:id/classification", pond.ClassificationHandler())
	protected.Get("/ponds/:id/projection", pond.ProjectionHandler(cfg))

	// Panen
	protected.Post("/ponds/:id/harvests", pond.CreateHarvestHandler(cfg))
	protected.Get("/ponds/:id/harvests", pond.ListHarvestsHandler())

	// Pakan
	protected.Post("/ponds/:id/feeds", feed.CreateFeedRecordHandler())
	protected.Get("/ponds/:id/feeds", feed.ListFeedRecordsHandler())
	protected.Get("/ponds/:id/feeds/total", feed.TotalFeedHandler())

	// Pembeli & penjualan
	protected.Post("/farms/:id/buyers", sale.CreateBuyerHandler())
	protected.Get("/farms/:id/buyers", sale.ListBuyersHandler())
	protected.Put("/buyers/:id", sale.UpdateBuyerHandler())
	protected.Delete("/buyers/:id", sale.DeleteBuyerHandler())
	protected.Get("/farms/:id/sales", sale.ListSalesHandler())

	// Pengeluaran
	protected.Post("/farms/:id/expense-categories", expense.CreateExpenseCategoryHandler())
	protected.Get("/farms/:id/expense-categories", expense.ListExpenseCategoriesHandler())
	protected.Post("/farms/:id/expenses", expense.CreateExpenseHandler())
	protected.Get("/farms/:id/expenses", expense.ListExpensesHandler())
	protected.Get("/farms/:id/expenses/summary/monthly", expense.MonthlyExpenseSummaryHandler())

	log.Info("server jalan", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server berhenti", zap.Error(err))
	}
}
