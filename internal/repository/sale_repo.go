package repository

import (
	"context"

	"github.com/Vaibhav-12521/Invento/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx inserts the sale inside the caller's transaction — sale rows
	// only ever come into existence together with their stock decrement.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	Delete(ctx context.Context, id uint) error
	CountByProductTx(tx *gorm.DB, productID uint) (int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

// Delete removes a sale without touching product stock — deleting a ledger
// entry does not restore inventory.
func (r *saleRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) CountByProductTx(tx *gorm.DB, productID uint) (int64, error) {
	var n int64
	err := tx.Model(&model.Sale{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
