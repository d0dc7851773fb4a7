package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string           `json:"name"            validate:"required,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"           validate:"required"`
	Cost          *decimal.Decimal `json:"cost"            validate:"required"`
	StockQuantity int              `json:"stock_quantity"  validate:"min=0"`
	MinStockLevel *int             `json:"min_stock_level" validate:"omitempty,min=0"`
	Category      *string          `json:"category"        validate:"omitempty,max=50"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"            validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Cost          *decimal.Decimal `json:"cost"`
	StockQuantity *int             `json:"stock_quantity"  validate:"omitempty,min=0"`
	MinStockLevel *int             `json:"min_stock_level" validate:"omitempty,min=0"`
	Category      *string          `json:"category"        validate:"omitempty,max=50"`
}

type AdjustStockRequest struct {
	// Delta is added to stock_quantity; negative values remove stock but may
	// never push it below zero.
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	// InStock limits the list to products with stock_quantity > 0 (sale form).
	InStock bool `form:"in_stock"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	Category      *string         `json:"category"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// ProductSummary is the minimal read-only projection served at /api/products
// for external consumers.
type ProductSummary struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

// AvailabilityResponse is returned by the public availability lookup
// (cached in redis, no side effects).
type AvailabilityResponse struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	StockAvailable int             `json:"stock_available"`
	Category       *string         `json:"category"`
}
