package dto

import "github.com/shopspring/decimal"

// TopProduct is one row of the best-sellers ranking.
type TopProduct struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DashboardSummary feeds the main dashboard. All aggregates tolerate an empty
// store: zero sums, empty slices.
type DashboardSummary struct {
	TotalProducts int64           `json:"total_products"`
	TotalSales    int64           `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	// TotalProfit = SUM((product.price - product.cost) * sale.quantity) over
	// all sales joined to their product, at current catalog prices.
	TotalProfit      decimal.Decimal   `json:"total_profit"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	TopProducts      []TopProduct      `json:"top_products"` // top 5 by quantity sold
	RecentSales      []SaleResponse    `json:"recent_sales"` // 10 most recent
}

// WindowedReport aggregates sales inside the trailing N-day window.
type WindowedReport struct {
	Days         int             `json:"days"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TopProducts  []TopProduct    `json:"top_products"` // qty desc, no limit
	Sales        []SaleResponse  `json:"sales"`
}
