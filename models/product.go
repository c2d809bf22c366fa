package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It is immutable once the catalog has been loaded.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"gt=0"`
	Name        string          `gorm:"not null" json:"name" validate:"required"`
	Category    string          `gorm:"index;not null" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

func (p *Product) TableName() string {
	return "products"
}
