package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one line in the sales ledger. TotalAmount is frozen at the moment
// of sale (unit price × quantity); later catalog price changes never touch it.
// Sales are never edited after creation.
type Sale struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    uint            `gorm:"index;not null"`
	Quantity     int             `gorm:"not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustomerName *string         `gorm:"size:100"`
	SaleDate     time.Time       `gorm:"index;not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
