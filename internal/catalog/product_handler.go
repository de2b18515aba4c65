package catalog

import (
	"fmt"
	"strings"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        decimal.Decimal `json:"stock"`
	UnitType     models.UnitType `json:"unit_type"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
}

type CreateProductRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      decimal.Decimal `json:"stock"`
	UnitType   string          `json:"unit_type"`
	CategoryID uint            `json:"category_id"`
}

type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *decimal.Decimal `json:"stock"`
	UnitType   *string          `json:"unit_type"`
	CategoryID *uint            `json:"category_id"`
}

func toProductResponse(p models.Product) ProductResponse {
	res := ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		UnitType:   p.UnitType,
		CategoryID: p.CategoryID,
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	return res
}

func productNameTaken(name string, excludeID uint) bool {
	var count int64
	database.DB.Model(&models.Product{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count)
	return count > 0
}

// Weight-based stock is tracked to at most 2 fractional digits.
func validStockPrecision(unitType models.UnitType, stock decimal.Decimal) bool {
	if unitType != models.UnitTypeKG {
		return true
	}
	return stock.Exponent() >= -2
}

// GET /api/products (any authenticated user)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("Category").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Category ID is required")
		}

		unitType, ok := models.ParseUnitType(body.UnitType)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unit type must be 'unit' or 'kg'")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}
		if body.Stock.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Stock cannot be negative")
		}
		if !validStockPrecision(unitType, body.Stock) {
			return fiber.NewError(fiber.StatusBadRequest, "Stock for kg unit type cannot have more than 2 decimal places")
		}

		if productNameTaken(body.Name, 0) {
			return fiber.NewError(fiber.StatusBadRequest, "Product with this name already exists")
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Category not found with ID: %d", body.CategoryID))
		}

		p := models.Product{
			Name:       body.Name,
			Price:      body.Price,
			Stock:      body.Stock,
			UnitType:   unitType,
			CategoryID: category.ID,
			Category:   &category,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		writeAudit(c, "product", p.ID, models.AuditActionCreate,
			fmt.Sprintf("Product %q created", p.Name), nil, p)

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.Preload("Category").First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := p

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			if productNameTaken(name, p.ID) {
				return fiber.NewError(fiber.StatusBadRequest, "Product with this name already exists")
			}
			p.Name = name
		}

		if body.UnitType != nil {
			unitType, ok := models.ParseUnitType(*body.UnitType)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Unit type must be 'unit' or 'kg'")
			}
			p.UnitType = unitType
		}

		if body.Price != nil {
			if body.Price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
			}
			p.Price = *body.Price
		}

		if body.Stock != nil {
			if body.Stock.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Stock cannot be negative")
			}
			p.Stock = *body.Stock
		}

		if !validStockPrecision(p.UnitType, p.Stock) {
			return fiber.NewError(fiber.StatusBadRequest, "Stock for kg unit type cannot have more than 2 decimal places")
		}

		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Category not found with ID: %d", *body.CategoryID))
			}
			p.CategoryID = category.ID
			p.Category = &category
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		writeAudit(c, "product", p.ID, models.AuditActionUpdate,
			fmt.Sprintf("Product %q updated", p.Name), before, p)

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		writeAudit(c, "product", p.ID, models.AuditActionDelete,
			fmt.Sprintf("Product %q deleted", p.Name), p, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
