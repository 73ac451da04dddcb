package repository

import (
	"context"

	"storefront-service/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
}

type gormProductRepo struct {
	db *gorm.DB
}

func NewGormProductRepo(db *gorm.DB) ProductRepository {
	return &gormProductRepo{db: db}
}

func (r *gormProductRepo) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
