package service

import (
	"context"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	topProductsLimit = 5
	recentSalesLimit = 10

	// DefaultReportDays is the trailing window used when the caller does not
	// provide one.
	DefaultReportDays = 30
)

// ReportService aggregates the two stores for dashboards and reports.
// Aggregation failures degrade to zero-valued/empty results: a broken
// aggregate never blocks the rest of the dashboard from rendering.
type ReportService interface {
	DashboardSummary(ctx context.Context) *dto.DashboardSummary
	WindowedReport(ctx context.Context, days int) *dto.WindowedReport
}

type reportService struct {
	repo        repository.ReportRepository
	productRepo repository.ProductRepository
}

func NewReportService(repo repository.ReportRepository, productRepo repository.ProductRepository) ReportService {
	return &reportService{repo: repo, productRepo: productRepo}
}

func (s *reportService) DashboardSummary(ctx context.Context) *dto.DashboardSummary {
	summary := &dto.DashboardSummary{
		TotalRevenue:     decimal.Zero,
		TotalProfit:      decimal.Zero,
		LowStockProducts: []dto.ProductResponse{},
		TopProducts:      []dto.TopProduct{},
		RecentSales:      []dto.SaleResponse{},
	}

	if n, err := s.repo.CountProducts(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: product count failed")
	} else {
		summary.TotalProducts = n
	}

	if totals, err := s.repo.Totals(ctx, time.Time{}); err != nil {
		log.Warn().Err(err).Msg("dashboard: sales totals failed")
	} else {
		summary.TotalSales = totals.TotalSales
		summary.TotalRevenue = totals.TotalRevenue
		summary.TotalProfit = totals.TotalProfit
	}

	if low, err := s.productRepo.ListLowStock(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: low-stock listing failed")
	} else {
		for i := range low {
			summary.LowStockProducts = append(summary.LowStockProducts, *productToResponse(&low[i]))
		}
	}

	if top, err := s.repo.TopProducts(ctx, time.Time{}, topProductsLimit); err != nil {
		log.Warn().Err(err).Msg("dashboard: top products failed")
	} else if top != nil {
		summary.TopProducts = top
	}

	if recent, err := s.repo.RecentSales(ctx, recentSalesLimit); err != nil {
		log.Warn().Err(err).Msg("dashboard: recent sales failed")
	} else {
		for i := range recent {
			summary.RecentSales = append(summary.RecentSales, *saleToResponse(&recent[i]))
		}
	}

	return summary
}

func (s *reportService) WindowedReport(ctx context.Context, days int) *dto.WindowedReport {
	if days < 1 {
		days = DefaultReportDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	report := &dto.WindowedReport{
		Days:         days,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
		TopProducts:  []dto.TopProduct{},
		Sales:        []dto.SaleResponse{},
	}

	if totals, err := s.repo.Totals(ctx, since); err != nil {
		log.Warn().Err(err).Int("days", days).Msg("report: sales totals failed")
	} else {
		report.TotalSales = totals.TotalSales
		report.TotalRevenue = totals.TotalRevenue
		report.TotalProfit = totals.TotalProfit
	}

	if top, err := s.repo.TopProducts(ctx, since, 0); err != nil {
		log.Warn().Err(err).Int("days", days).Msg("report: top products failed")
	} else if top != nil {
		report.TopProducts = top
	}

	if sales, err := s.repo.SalesSince(ctx, since); err != nil {
		log.Warn().Err(err).Int("days", days).Msg("report: sales listing failed")
	} else {
		for i := range sales {
			report.Sales = append(report.Sales, *saleToResponse(&sales[i]))
		}
	}

	return report
}
