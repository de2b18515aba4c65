package report

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SalesSummaryResponse struct {
	TotalSales     int64           `json:"total_sales"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalItemsSold decimal.Decimal `json:"total_items_sold"`
}

type DailyRevenueResponse struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type TopProductResponse struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type LowStockResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	UnitType models.UnitType `json:"unit_type"`
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from and to are required (YYYY-MM-DD)")
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	// to is inclusive: the range covers the whole of its day.
	return from, to.AddDate(0, 0, 1), nil
}

// GET /api/admin/reports/sales-summary?from=2026-08-01&to=2026-08-31
func SalesSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return err
		}

		var summary struct {
			TotalSales   int64
			TotalRevenue decimal.Decimal
		}
		if err := database.DB.Model(&models.Sale{}).
			Where("timestamp >= ? AND timestamp < ?", start, end).
			Select("COUNT(*) AS total_sales, COALESCE(SUM(total_amount), 0) AS total_revenue").
			Scan(&summary).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute sales summary")
		}

		var items struct {
			TotalItemsSold decimal.Decimal
		}
		if err := database.DB.Model(&models.SaleItem{}).
			Joins("JOIN sales ON sales.id = sale_items.sale_id").
			Where("sales.timestamp >= ? AND sales.timestamp < ?", start, end).
			Select("COALESCE(SUM(sale_items.quantity), 0) AS total_items_sold").
			Scan(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute sales summary")
		}

		return c.JSON(SalesSummaryResponse{
			TotalSales:     summary.TotalSales,
			TotalRevenue:   summary.TotalRevenue,
			TotalItemsSold: items.TotalItemsSold,
		})
	}
}

// GET /api/admin/reports/daily-revenue
func DailyRevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []struct {
			Day   string
			Total decimal.Decimal
		}
		if err := database.DB.Model(&models.Sale{}).
			Select("DATE(timestamp) AS day, SUM(total_amount) AS total").
			Group("DATE(timestamp)").
			Order("day asc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute daily revenue")
		}

		res := make([]DailyRevenueResponse, 0, len(rows))
		for _, row := range rows {
			res = append(res, DailyRevenueResponse{Date: row.Day, Total: row.Total})
		}
		return c.JSON(res)
	}
}

// GET /api/admin/reports/top-products?limit=5
func TopProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 5)
		if limit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
		}

		var rows []struct {
			ProductID uint
			Name      string
			Quantity  decimal.Decimal
		}
		if err := database.DB.Model(&models.SaleItem{}).
			Joins("JOIN products ON products.id = sale_items.product_id").
			Select("sale_items.product_id AS product_id, products.name AS name, SUM(sale_items.quantity) AS quantity").
			Group("sale_items.product_id, products.name").
			Order("quantity desc").
			Limit(limit).
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute top products")
		}

		res := make([]TopProductResponse, 0, len(rows))
		for _, row := range rows {
			res = append(res, TopProductResponse{ProductID: row.ProductID, Name: row.Name, Quantity: row.Quantity})
		}
		return c.JSON(res)
	}
}

// GET /api/admin/reports/low-stock?threshold=10
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold, err := decimal.NewFromString(c.Query("threshold", "10"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "threshold must be a number")
		}

		var products []models.Product
		if err := database.DB.
			Where("stock <= ?", threshold).
			Order("stock asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list low-stock products")
		}

		res := make([]LowStockResponse, 0, len(products))
		for _, p := range products {
			res = append(res, LowStockResponse{ID: p.ID, Name: p.Name, Stock: p.Stock, UnitType: p.UnitType})
		}
		return c.JSON(res)
	}
}
