package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/model"
	"github.com/Vaibhav-12521/Invento/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Product
	for _, p := range r.products {
		if filter.InStock && p.StockQuantity <= 0 {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) DeleteTx(_ *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Product
	for _, p := range r.products {
		if p.StockQuantity <= p.MinStockLevel {
			result = append(result, *p)
		}
	}
	return result, nil
}

// DecrementStockTx mirrors the SQL conditional decrement: the check and the
// write happen under one lock, so concurrent callers serialize exactly like
// rows under a write lock.
func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uint, quantity int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.StockQuantity < quantity {
		return 0, nil
	}
	p.StockQuantity -= quantity
	return 1, nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id uint, delta int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.StockQuantity+delta < 0 {
		return 0, nil
	}
	p.StockQuantity += delta
	return 1, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory SaleRepository stub ────────────────────────────────────────────

type stubSaleRepo struct {
	mu     sync.Mutex
	sales  map[uint]*model.Sale
	nextID uint
	// failCreate simulates a storage failure inside the sale transaction.
	failCreate bool
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uint]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("storage failure")
	}
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Sale
	for _, s := range r.sales {
		result = append(result, *s)
	}
	return result, nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) CountByProductTx(_ *gorm.DB, productID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sales {
		if s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── In-memory ReportRepository stub ──────────────────────────────────────────

// stubReportRepo computes aggregates over the product/sale stubs, so report
// tests exercise the same data the other stubs hold.
type stubReportRepo struct {
	products *stubProductRepo
	sales    *stubSaleRepo
	// failAll makes every query error, for degradation tests.
	failAll bool
}

var errStubStorage = errors.New("storage failure")

func (r *stubReportRepo) CountProducts(_ context.Context) (int64, error) {
	if r.failAll {
		return 0, errStubStorage
	}
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	return int64(len(r.products.products)), nil
}

func (r *stubReportRepo) Totals(_ context.Context, since time.Time) (*repository.SalesTotals, error) {
	if r.failAll {
		return nil, errStubStorage
	}
	totals := &repository.SalesTotals{TotalRevenue: decimal.Zero, TotalProfit: decimal.Zero}
	r.sales.mu.Lock()
	defer r.sales.mu.Unlock()
	for _, s := range r.sales.sales {
		if !since.IsZero() && s.SaleDate.Before(since) {
			continue
		}
		totals.TotalSales++
		totals.TotalRevenue = totals.TotalRevenue.Add(s.TotalAmount)
		if p, err := r.products.FindByID(context.Background(), s.ProductID); err == nil {
			margin := p.Price.Sub(p.Cost).Mul(decimal.NewFromInt(int64(s.Quantity)))
			totals.TotalProfit = totals.TotalProfit.Add(margin)
		}
	}
	return totals, nil
}

func (r *stubReportRepo) TopProducts(_ context.Context, since time.Time, limit int) ([]dto.TopProduct, error) {
	if r.failAll {
		return nil, errStubStorage
	}
	r.sales.mu.Lock()
	byProduct := make(map[uint]*dto.TopProduct)
	for _, s := range r.sales.sales {
		if !since.IsZero() && s.SaleDate.Before(since) {
			continue
		}
		row, ok := byProduct[s.ProductID]
		if !ok {
			row = &dto.TopProduct{ProductID: s.ProductID, TotalRevenue: decimal.Zero}
			byProduct[s.ProductID] = row
		}
		row.TotalSold += int64(s.Quantity)
		row.TotalRevenue = row.TotalRevenue.Add(s.TotalAmount)
	}
	r.sales.mu.Unlock()

	var rows []dto.TopProduct
	for pid, row := range byProduct {
		if p, err := r.products.FindByID(context.Background(), pid); err == nil {
			row.Name = p.Name
		}
		rows = append(rows, *row)
	}
	// qty desc, ties by product id asc
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].TotalSold > rows[i].TotalSold ||
				(rows[j].TotalSold == rows[i].TotalSold && rows[j].ProductID < rows[i].ProductID) {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *stubReportRepo) RecentSales(_ context.Context, limit int) ([]model.Sale, error) {
	if r.failAll {
		return nil, errStubStorage
	}
	sales, _ := r.sales.List(context.Background())
	for i := 0; i < len(sales); i++ {
		for j := i + 1; j < len(sales); j++ {
			if sales[j].SaleDate.After(sales[i].SaleDate) {
				sales[i], sales[j] = sales[j], sales[i]
			}
		}
	}
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (r *stubReportRepo) SalesSince(_ context.Context, since time.Time) ([]model.Sale, error) {
	if r.failAll {
		return nil, errStubStorage
	}
	all, _ := r.sales.List(context.Background())
	var result []model.Sale
	for _, s := range all {
		if !s.SaleDate.Before(since) {
			result = append(result, s)
		}
	}
	return result, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, name string, price, cost float64, stock, minStock int) *model.Product {
	p := &model.Product{
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		Cost:          decimal.NewFromFloat(cost),
		StockQuantity: stock,
		MinStockLevel: minStock,
	}
	_ = repo.Create(context.Background(), p)
	return p
}
