package service

import (
	"context"
	"errors"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/model"
	"github.com/Vaibhav-12521/Invento/internal/repository"
	"github.com/Vaibhav-12521/Invento/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// saleDateFormat matches the timestamp format the original API exposed.
const saleDateFormat = "2006-01-02 15:04:05"

type SaleService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SaleResponse, error)
	GetDetail(ctx context.Context, id uint) (*dto.SaleDetail, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
	Delete(ctx context.Context, id uint) error
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	dispatcher  *worker.Dispatcher
}

func NewSaleService(repo repository.SaleRepository, productRepo repository.ProductRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, productRepo: productRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// RecordSale is the one operation that mutates two entities together:
//  1. Resolve the product (price lookup, existence check).
//  2. Freeze total_amount = unit_price × quantity. The caller may override
//     unit_price; omitted means the current catalog price.
//  3. BEGIN TX: conditional stock decrement (zero rows → insufficient stock,
//     roll back), insert the sale row. COMMIT.
//  4. (async) enqueue a low-stock alert when the product crossed its threshold.
func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	unitPrice := product.Price
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, errors.New("unit_price must be non-negative")
		}
		unitPrice = *req.UnitPrice
	}
	totalAmount := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	sale := model.Sale{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		TotalAmount:  totalAmount,
		CustomerName: req.CustomerName,
		SaleDate:     time.Now().UTC(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		affected, err := s.productRepo.DecrementStockTx(tx, req.ProductID, req.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		return s.repo.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock alert — best effort, fire & forget. The pre-sale read plus the
	// decrement tells us where stock landed without another query.
	if s.dispatcher != nil {
		newStock := product.StockQuantity - req.Quantity
		if newStock <= product.MinStockLevel {
			_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
				ProductID:     product.ID,
				ProductName:   product.Name,
				StockLeft:     newStock,
				MinStockLevel: product.MinStockLevel,
			})
		}
	}

	resp := saleToResponse(&sale)
	resp.ProductName = product.Name
	resp.UnitPrice = unitPrice
	return resp, nil
}

func (s *saleService) GetByID(ctx context.Context, id uint) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

// GetDetail is the read-only projection for external API consumers. UnitPrice
// reflects the product's current catalog price, mirroring the original API.
func (s *saleService) GetDetail(ctx context.Context, id uint) (*dto.SaleDetail, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	detail := &dto.SaleDetail{
		ID:           sale.ID,
		Quantity:     sale.Quantity,
		TotalAmount:  sale.TotalAmount,
		CustomerName: sale.CustomerName,
		SaleDate:     sale.SaleDate.Format(saleDateFormat),
	}
	if sale.Product != nil {
		detail.ProductName = sale.Product.Name
		detail.UnitPrice = sale.Product.Price
	}
	return detail, nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, *saleToResponse(&sales[i]))
	}
	return resp, nil
}

// Delete removes a sale from the ledger. Stock is NOT restored.
func (s *saleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSaleNotFound
		}
		return err
	}
	return nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		ProductID:    sale.ProductID,
		Quantity:     sale.Quantity,
		TotalAmount:  sale.TotalAmount,
		CustomerName: sale.CustomerName,
		SaleDate:     sale.SaleDate.Format(saleDateFormat),
	}
	if sale.Quantity > 0 {
		resp.UnitPrice = sale.TotalAmount.Div(decimal.NewFromInt(int64(sale.Quantity)))
	}
	if sale.Product != nil {
		resp.ProductName = sale.Product.Name
	}
	return resp
}
