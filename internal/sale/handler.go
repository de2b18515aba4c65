package sale

import (
	"errors"
	"time"

	"pos-backend/internal/auth"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSaleItemRequest struct {
	ProductID uint            `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateSaleRequest struct {
	Items []CreateSaleItemRequest `json:"items"`
}

type SaleItemResponse struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID              uint               `json:"id"`
	Timestamp       time.Time          `json:"timestamp"`
	InvoiceNumber   string             `json:"invoice_number"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	CashierUsername string             `json:"cashier_username"`
	Items           []SaleItemResponse `json:"items"`
}

type ShopInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type ReceiptItemResponse struct {
	Name      string          `json:"name"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type ReceiptResponse struct {
	InvoiceNumber string                `json:"invoice_number"`
	Shop          ShopInfo              `json:"shop"`
	DateTime      time.Time             `json:"date_time"`
	Cashier       string                `json:"cashier"`
	Items         []ReceiptItemResponse `json:"items"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Footer        string                `json:"footer"`
}

func toResponse(s *models.Sale) SaleResponse {
	res := SaleResponse{
		ID:            s.ID,
		Timestamp:     s.Timestamp,
		InvoiceNumber: s.InvoiceNumber,
		TotalAmount:   s.TotalAmount,
	}
	if s.Cashier != nil {
		res.CashierUsername = s.Cashier.Username
	}
	res.Items = make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		ir := SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: item.PriceAtSale,
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.UnitPrice = item.Product.Price
		}
		res.Items = append(res.Items, ir)
	}
	return res
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, ok := auth.CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sale must contain at least one item")
		}

		lines := make([]LineRequest, 0, len(body.Items))
		for _, item := range body.Items {
			lines = append(lines, LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		s, err := Create(database.DB, userID, lines)
		if err != nil {
			switch {
			case errors.Is(err, ErrCashierNotFound),
				errors.Is(err, ErrInvalidQuantity),
				errors.Is(err, ErrProductNotFound),
				errors.Is(err, ErrInsufficientStock):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Could not record sale")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(s))
	}
}

// GET /api/admin/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sales, err := FindAll(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		res := make([]SaleResponse, 0, len(sales))
		for i := range sales {
			res = append(res, toResponse(&sales[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/sales/my-sales
func MySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, ok := auth.CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		sales, err := FindByCashier(database.DB, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		res := make([]SaleResponse, 0, len(sales))
		for i := range sales {
			res = append(res, toResponse(&sales[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		s, err := FindByID(database.DB, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sale not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load sale")
		}

		return c.JSON(toResponse(s))
	}
}

// GET /api/sales/:id/receipt
func ReceiptHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale id")
		}

		s, err := FindByID(database.DB, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sale not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load sale")
		}

		receipt := ReceiptResponse{
			InvoiceNumber: s.InvoiceNumber,
			Shop: ShopInfo{
				Name:    cfg.ShopName,
				Address: cfg.ShopAddress,
				Phone:   cfg.ShopPhone,
			},
			DateTime:    s.Timestamp,
			TotalAmount: s.TotalAmount,
			Footer:      "Thank you for shopping!",
		}
		if s.Cashier != nil {
			receipt.Cashier = s.Cashier.Username
		}
		receipt.Items = make([]ReceiptItemResponse, 0, len(s.Items))
		for _, item := range s.Items {
			ri := ReceiptItemResponse{
				Qty:   item.Quantity,
				Total: item.PriceAtSale,
			}
			if item.Product != nil {
				ri.Name = item.Product.Name
				ri.UnitPrice = item.Product.Price
			}
			receipt.Items = append(receipt.Items, ri)
		}

		return c.JSON(receipt)
	}
}
