package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes with errors.Is; anything else is treated as a storage failure.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrSaleNotFound    = errors.New("sale not found")

	// ErrInsufficientStock: requested quantity exceeds the product's current
	// stock. The sale transaction has been rolled back and stock is unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductReferenced: the product has recorded sales and cannot be
	// deleted without destroying ledger history.
	ErrProductReferenced = errors.New("product has recorded sales")
)
