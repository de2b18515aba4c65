package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected server error"})
		},
	})

	app.Get("/reports/sales-summary", SalesSummaryHandler())
	app.Get("/reports/daily-revenue", DailyRevenueHandler())
	app.Get("/reports/top-products", TopProductsHandler())
	app.Get("/reports/low-stock", LowStockHandler())

	return app
}

func get[T any](t *testing.T, app *fiber.App, path string) T {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Two products, three sales across two days.
func seedSales(t *testing.T) (apple, rice models.Product) {
	t.Helper()

	cashier := models.User{Username: "cashier1", PasswordHash: "x", Role: models.RoleCashier}
	if err := database.DB.Create(&cashier).Error; err != nil {
		t.Fatalf("seed cashier: %v", err)
	}
	cat := models.Category{Name: "Groceries"}
	if err := database.DB.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	apple = models.Product{Name: "Apple", Price: d("2.50"), Stock: d("4"), UnitType: models.UnitTypeUnit, CategoryID: cat.ID}
	rice = models.Product{Name: "Rice", Price: d("1.20"), Stock: d("50"), UnitType: models.UnitTypeKG, CategoryID: cat.ID}
	for _, p := range []*models.Product{&apple, &rice} {
		if err := database.DB.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	sales := []models.Sale{
		{
			InvoiceNumber: "INV-TEST0001",
			TotalAmount:   d("5.00"),
			Timestamp:     time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			CashierID:     cashier.ID,
			Items: []models.SaleItem{
				{ProductID: apple.ID, Quantity: d("2"), PriceAtSale: d("5.00")},
			},
		},
		{
			InvoiceNumber: "INV-TEST0002",
			TotalAmount:   d("6.00"),
			Timestamp:     time.Date(2026, 8, 1, 17, 30, 0, 0, time.UTC),
			CashierID:     cashier.ID,
			Items: []models.SaleItem{
				{ProductID: rice.ID, Quantity: d("5"), PriceAtSale: d("6.00")},
			},
		},
		{
			InvoiceNumber: "INV-TEST0003",
			TotalAmount:   d("9.60"),
			Timestamp:     time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC),
			CashierID:     cashier.ID,
			Items: []models.SaleItem{
				{ProductID: rice.ID, Quantity: d("8"), PriceAtSale: d("9.60")},
			},
		},
	}
	for i := range sales {
		if err := database.DB.Create(&sales[i]).Error; err != nil {
			t.Fatalf("seed sale: %v", err)
		}
	}
	return apple, rice
}

func TestSalesSummary(t *testing.T) {
	app := newTestApp(t)
	seedSales(t)

	got := get[SalesSummaryResponse](t, app, "/reports/sales-summary?from=2026-08-01&to=2026-08-01")
	if got.TotalSales != 2 {
		t.Errorf("total_sales = %d, want 2", got.TotalSales)
	}
	if !got.TotalRevenue.Equal(d("11.00")) {
		t.Errorf("total_revenue = %s, want 11.00", got.TotalRevenue)
	}
	if !got.TotalItemsSold.Equal(d("7")) {
		t.Errorf("total_items_sold = %s, want 7", got.TotalItemsSold)
	}

	// The whole range.
	got = get[SalesSummaryResponse](t, app, "/reports/sales-summary?from=2026-08-01&to=2026-08-31")
	if got.TotalSales != 3 {
		t.Errorf("total_sales = %d, want 3", got.TotalSales)
	}
	if !got.TotalRevenue.Equal(d("20.60")) {
		t.Errorf("total_revenue = %s, want 20.60", got.TotalRevenue)
	}

	// Empty range still answers with zeros.
	got = get[SalesSummaryResponse](t, app, "/reports/sales-summary?from=2026-07-01&to=2026-07-31")
	if got.TotalSales != 0 || !got.TotalRevenue.IsZero() || !got.TotalItemsSold.IsZero() {
		t.Errorf("empty range summary = %+v, want zeros", got)
	}
}

func TestSalesSummaryRequiresRange(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/reports/sales-summary", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDailyRevenue(t *testing.T) {
	app := newTestApp(t)
	seedSales(t)

	got := get[[]DailyRevenueResponse](t, app, "/reports/daily-revenue")
	if len(got) != 2 {
		t.Fatalf("days = %d, want 2 (%+v)", len(got), got)
	}
	if got[0].Date != "2026-08-01" || !got[0].Total.Equal(d("11.00")) {
		t.Errorf("day 0 = %+v, want 2026-08-01 / 11.00", got[0])
	}
	if got[1].Date != "2026-08-02" || !got[1].Total.Equal(d("9.60")) {
		t.Errorf("day 1 = %+v, want 2026-08-02 / 9.60", got[1])
	}
}

func TestTopProducts(t *testing.T) {
	app := newTestApp(t)
	apple, rice := seedSales(t)

	got := get[[]TopProductResponse](t, app, "/reports/top-products?limit=5")
	if len(got) != 2 {
		t.Fatalf("products = %d, want 2 (%+v)", len(got), got)
	}
	if got[0].ProductID != rice.ID || !got[0].Quantity.Equal(d("13")) {
		t.Errorf("top product = %+v, want Rice with 13", got[0])
	}
	if got[1].ProductID != apple.ID || !got[1].Quantity.Equal(d("2")) {
		t.Errorf("second product = %+v, want Apple with 2", got[1])
	}

	got = get[[]TopProductResponse](t, app, "/reports/top-products?limit=1")
	if len(got) != 1 || got[0].Name != "Rice" {
		t.Errorf("limit=1 result = %+v, want only Rice", got)
	}
}

func TestLowStock(t *testing.T) {
	app := newTestApp(t)
	apple, _ := seedSales(t) // apple stock 4, rice stock 50

	got := get[[]LowStockResponse](t, app, "/reports/low-stock?threshold=10")
	if len(got) != 1 {
		t.Fatalf("low stock products = %d, want 1 (%+v)", len(got), got)
	}
	if got[0].ID != apple.ID || !got[0].Stock.Equal(d("4")) {
		t.Errorf("low stock = %+v, want Apple with 4", got[0])
	}

	got = get[[]LowStockResponse](t, app, "/reports/low-stock?threshold=100")
	if len(got) != 2 {
		t.Errorf("threshold 100 products = %d, want 2", len(got))
	}
}
