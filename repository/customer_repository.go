package repository

import (
	"context"

	"storefront-service/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.CustomerInformation, error)
	Save(ctx context.Context, customer *models.CustomerInformation) error
}

type gormCustomerRepo struct {
	db *gorm.DB
}

func NewGormCustomerRepo(db *gorm.DB) CustomerRepository {
	return &gormCustomerRepo{db: db}
}

func (r *gormCustomerRepo) FindByEmail(ctx context.Context, email string) (*models.CustomerInformation, error) {
	var customer models.CustomerInformation
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepo) Save(ctx context.Context, customer *models.CustomerInformation) error {
	return r.db.WithContext(ctx).Save(customer).Error
}
