package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values stored on a Transaction.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
)

// Transaction is one recorded checkout, created exactly once per Stripe
// session by the webhook handler. StripeSessionID carries the unique
// constraint that makes duplicate webhook delivery safe.
type Transaction struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	StripeSessionID       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"stripe_session_id"`
	StripePaymentIntentID *string         `gorm:"type:varchar(255);uniqueIndex" json:"stripe_payment_intent_id,omitempty"`
	CustomerEmail         string          `gorm:"type:varchar(255)" json:"customer_email"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Currency              string          `gorm:"type:varchar(10)" json:"currency"`
	PaymentStatus         string          `gorm:"type:varchar(20);not null" json:"payment_status"`
	TransactionDate       time.Time       `json:"transaction_date"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

// TransactionItem is one line of an order. ProductID holds our internal
// product ID when it could be recovered from the line description, or the
// Stripe price ID as a fallback.
type TransactionItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID uint            `gorm:"index;not null" json:"transaction_id"`
	ProductName   string          `gorm:"type:varchar(255)" json:"product_name"`
	ProductID     string          `gorm:"type:varchar(255)" json:"product_id"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`
}
