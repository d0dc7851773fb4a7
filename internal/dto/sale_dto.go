package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecordSaleRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,gt=0"`
	// UnitPrice overrides the catalog price when present (discounts, price
	// matching). Omitted → the product's current price is used.
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	CustomerName *string          `json:"customer_name" validate:"omitempty,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerName *string         `json:"customer_name"`
	SaleDate     string          `json:"sale_date"`
}

// SaleDetail is the minimal read-only projection served at /api/sales/:id.
// UnitPrice here is the product's current catalog price, not the price the
// sale was recorded at — kept as the original system exposed it.
type SaleDetail struct {
	ID           uint            `json:"id"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerName *string         `json:"customer_name"`
	SaleDate     string          `json:"sale_date"`
}
