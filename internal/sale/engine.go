package sale

import (
	"errors"
	"fmt"
	"time"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business failures of the sale engine. Handlers map them onto HTTP statuses;
// all of them abort the enclosing transaction.
var (
	ErrCashierNotFound   = errors.New("cashier not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// LineRequest is one (product, quantity) pair of a sale request, in the order
// the cashier rang it up.
type LineRequest struct {
	ProductID uint
	Quantity  decimal.Decimal
}

// Create validates the requested lines, deducts stock, and persists the sale
// together with its items in a single transaction. Any failure rolls back
// every stock deduction made for earlier lines; there is no partial success.
func Create(db *gorm.DB, cashierID uint, lines []LineRequest) (*models.Sale, error) {
	var saleID uint

	err := db.Transaction(func(tx *gorm.DB) error {
		var cashier models.User
		if err := tx.First(&cashier, "id = ?", cashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCashierNotFound
			}
			return err
		}

		total := decimal.Zero
		items := make([]models.SaleItem, 0, len(lines))

		for _, line := range lines {
			if !line.Quantity.IsPositive() {
				return ErrInvalidQuantity
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w with ID: %d", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			if product.Stock.LessThan(line.Quantity) {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			// Conditional decrement: the WHERE clause re-checks stock inside
			// the UPDATE itself, so a concurrent sale that got there first
			// cannot be overwritten into negative stock. Zero affected rows
			// means we lost that race.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			lineTotal := product.Price.Mul(line.Quantity)
			total = total.Add(lineTotal)

			items = append(items, models.SaleItem{
				ProductID:   product.ID,
				Quantity:    line.Quantity,
				PriceAtSale: lineTotal,
			})
		}

		s := models.Sale{
			InvoiceNumber: NewInvoiceNumber(),
			TotalAmount:   total,
			Timestamp:     time.Now(),
			CashierID:     cashier.ID,
			Items:         items,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		saleID = s.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FindByID(db, saleID)
}

// FindByID loads one sale with its items, their products and the cashier.
func FindByID(db *gorm.DB, id uint) (*models.Sale, error) {
	var s models.Sale
	err := db.Preload("Items.Product").Preload("Cashier").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAll returns every sale, oldest first.
func FindAll(db *gorm.DB) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Preload("Items.Product").Preload("Cashier").Order("id asc").Find(&sales).Error
	return sales, err
}

// FindByCashier returns the sales recorded by one cashier, oldest first.
func FindByCashier(db *gorm.DB, cashierID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Preload("Items.Product").Preload("Cashier").
		Where("cashier_id = ?", cashierID).
		Order("id asc").
		Find(&sales).Error
	return sales, err
}
