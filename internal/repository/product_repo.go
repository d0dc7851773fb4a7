package repository

import (
	"context"

	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/model"

	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	DeleteTx(tx *gorm.DB, id uint) error
	ListLowStock(ctx context.Context) ([]model.Product, error)

	// DecrementStockTx performs the conditional decrement inside a sale
	// transaction: zero rows affected means insufficient stock and the caller
	// must roll back.
	DecrementStockTx(tx *gorm.DB, id uint, quantity int) (int64, error)

	// AdjustStock adds delta to stock_quantity, refusing to go below zero.
	AdjustStock(ctx context.Context, id uint, delta int) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	var products []model.Product

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.InStock {
		q = q.Where("stock_quantity > 0")
	}

	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Product{}, id).Error
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity <= min_stock_level").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// DecrementStockTx is the atomicity point of the whole system. The WHERE guard
// re-checks sufficiency under the transaction's write lock, so two concurrent
// sales can never both deduct past zero.
func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uint, quantity int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	return res.RowsAffected, res.Error
}

func (r *productRepo) AdjustStock(ctx context.Context, id uint, delta int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
