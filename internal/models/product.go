package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitType string

const (
	UnitTypeUnit UnitType = "unit" // sold by piece count
	UnitTypeKG   UnitType = "kg"   // sold by weight
)

func ParseUnitType(s string) (UnitType, bool) {
	switch UnitType(s) {
	case UnitTypeUnit, UnitTypeKG:
		return UnitType(s), true
	}
	return "", false
}

type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:100;not null;uniqueIndex"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitType   UnitType        `gorm:"size:10;not null"`
	CategoryID uint            `gorm:"not null;index"`
	Category   *Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
