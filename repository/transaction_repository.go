package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	AddItems(ctx context.Context, items []models.TransactionItem) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.Transaction, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Transaction, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
	Count(ctx context.Context) (int64, error)
}

type gormTransactionRepo struct {
	db *gorm.DB
}

func NewGormTransactionRepo(db *gorm.DB) TransactionRepository {
	return &gormTransactionRepo{db: db}
}

func (r *gormTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *gormTransactionRepo) AddItems(ctx context.Context, items []models.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *gormTransactionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("stripe_session_id = ?", sessionID).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *gormTransactionRepo) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", paymentIntentID).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *gormTransactionRepo) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).Update("payment_status", status).Error
}

func (r *gormTransactionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is a missing-record lookup result.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation. The
// session-id unique index resolves races between concurrent redeliveries of
// the same event, so the second insert must map to "already processed".
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
