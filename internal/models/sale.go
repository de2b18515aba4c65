package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is immutable once created. Its items are owned exclusively by the sale
// and are written together with it in one transaction.
type Sale struct {
	ID            uint            `gorm:"primaryKey"`
	InvoiceNumber string          `gorm:"size:20;uniqueIndex;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Timestamp     time.Time       `gorm:"not null;index"`
	CashierID     uint            `gorm:"not null;index"`
	Cashier       *User
	Items         []SaleItem `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

type SaleItem struct {
	ID        uint `gorm:"primaryKey"`
	SaleID    uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Product   *Product
	Quantity  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// PriceAtSale is the line total (unit price × quantity) frozen at
	// transaction time, immune to later price changes.
	PriceAtSale decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
