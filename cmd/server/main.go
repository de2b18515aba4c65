package main

import (
	"log"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/catalog"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/models"
	"pos-backend/internal/report"
	"pos-backend/internal/sale"
	"pos-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(logger.New())

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
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog reads (any authenticated user)
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/categories", catalog.ListCategoriesHandler())

	// Sales
	protected.Post("/sales", sale.CreateSaleHandler())
	protected.Get("/sales/my-sales", sale.MySalesHandler())
	protected.Get("/sales/:id", sale.GetSaleHandler())
	protected.Get("/sales/:id/receipt", sale.ReceiptHandler(cfg))

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// User management
	adminRoutes.Post("/users", user.CreateUserHandler())
	adminRoutes.Get("/users", user.ListUsersHandler())
	adminRoutes.Get("/users/:id", user.GetUserHandler())
	adminRoutes.Put("/users/:id", user.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", user.DeleteUserHandler())

	// Catalog management
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Post("/categories", catalog.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", catalog.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", catalog.DeleteCategoryHandler())

	// All sales
	adminRoutes.Get("/sales", sale.ListSalesHandler())

	// Reports
	adminRoutes.Get("/reports/sales-summary", report.SalesSummaryHandler())
	adminRoutes.Get("/reports/daily-revenue", report.DailyRevenueHandler())
	adminRoutes.Get("/reports/top-products", report.TopProductsHandler())
	adminRoutes.Get("/reports/low-stock", report.LowStockHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
