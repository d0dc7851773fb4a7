package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item tracked by the inventory.
// StockQuantity is only ever mutated through the repository's conditional
// decrement (sales) or explicit adjustments — it must never go negative.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:100;index;not null"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	// MinStockLevel is the low-stock threshold: stock_quantity <= min_stock_level
	// flags the product on the dashboard and triggers an alert job.
	MinStockLevel int     `gorm:"not null;default:5"`
	Category      *string `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
