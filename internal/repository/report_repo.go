package repository

import (
	"context"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesTotals holds the scalar aggregates shared by the dashboard and the
// windowed report.
type SalesTotals struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// ReportRepository is the read-only aggregation layer. No method mutates state.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	// Totals aggregates revenue, profit and sale count. A zero `since` means
	// all time; otherwise only sales with sale_date >= since are counted.
	Totals(ctx context.Context, since time.Time) (*SalesTotals, error)
	// TopProducts ranks products by summed quantity sold, ties broken by
	// product id for a stable order. limit <= 0 means no limit.
	TopProducts(ctx context.Context, since time.Time, limit int) ([]dto.TopProduct, error)
	RecentSales(ctx context.Context, limit int) ([]model.Sale, error)
	SalesSince(ctx context.Context, since time.Time) ([]model.Sale, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *reportRepo) Totals(ctx context.Context, since time.Time) (*SalesTotals, error) {
	var totals SalesTotals

	q := r.db.WithContext(ctx)
	where := ""
	args := []interface{}{}
	if !since.IsZero() {
		where = "WHERE s.sale_date >= ?"
		args = append(args, since)
	}

	// Profit is valued at the product's current price/cost, as the original
	// system computed it — not at the price the sale was recorded at.
	err := q.Raw(`
		SELECT
			COUNT(s.id)                                            AS total_sales,
			COALESCE(SUM(s.total_amount), 0)                       AS total_revenue,
			COALESCE(SUM((p.price - p.cost) * s.quantity), 0)      AS total_profit
		FROM sales s
		JOIN products p ON p.id = s.product_id `+where,
		args...,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *reportRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]dto.TopProduct, error) {
	var rows []dto.TopProduct

	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("products.id AS product_id, products.name AS name, SUM(sales.quantity) AS total_sold, SUM(sales.total_amount) AS total_revenue").
		Joins("JOIN products ON products.id = sales.product_id").
		Group("products.id, products.name").
		Order("SUM(sales.quantity) DESC, products.id ASC")
	if !since.IsZero() {
		q = q.Where("sales.sale_date >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) RecentSales(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").
		Order("sale_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *reportRepo) SalesSince(ctx context.Context, since time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").
		Where("sale_date >= ?", since).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}
