package service

import (
	"context"
	"errors"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/model"
	"github.com/Vaibhav-12521/Invento/internal/repository"

	"gorm.io/gorm"
)

// ProductService defines the business logic contract for the product catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
	AdjustStock(ctx context.Context, id uint, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListSummaries(ctx context.Context) ([]dto.ProductSummary, error)
}

type productService struct {
	repo     repository.ProductRepository
	saleRepo repository.SaleRepository
}

func NewProductService(repo repository.ProductRepository, saleRepo repository.SaleRepository) ProductService {
	return &productService{repo: repo, saleRepo: saleRepo}
}

const defaultMinStockLevel = 5

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, errors.New("price and cost must be non-negative")
	}

	minStock := defaultMinStockLevel
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Cost:          *req.Cost,
		StockQuantity: req.StockQuantity,
		MinStockLevel: minStock,
		Category:      req.Category,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price must be non-negative")
		}
		p.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, errors.New("cost must be non-negative")
		}
		p.Cost = *req.Cost
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.MinStockLevel != nil {
		p.MinStockLevel = *req.MinStockLevel
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Delete removes a product. Products with recorded sales are rejected: the
// sale ledger is financial history and must outlive the catalog entry.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.saleRepo.CountByProductTx(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrProductReferenced
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *productService) AdjustStock(ctx context.Context, id uint, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	affected, err := s.repo.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Either the product does not exist or the delta would go negative.
		if _, ferr := s.repo.FindByID(ctx, id); ferr != nil {
			return nil, ErrProductNotFound
		}
		return nil, ErrInsufficientStock
	}
	return s.GetByID(ctx, id)
}

func (s *productService) ListSummaries(ctx context.Context) ([]dto.ProductSummary, error) {
	products, err := s.repo.List(ctx, dto.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductSummary{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		})
	}
	return out, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		Category:      p.Category,
		LowStock:      p.StockQuantity <= p.MinStockLevel,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
