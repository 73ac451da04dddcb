package controllers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// handleCheckoutCompleted materializes a Transaction (plus items) for a
// completed checkout. Extraction already happened when the idempotency key
// was derived; whatever the chain could not resolve arrived as defaults, so
// a transaction is always written; a placeholder row beats a silently
// dropped payment event.
func (wc *WebhookController) handleCheckoutCompleted(ctx context.Context, sessionID string, details services.CheckoutDetails, missing []string) error {
	if len(missing) > 0 {
		wc.Logger.Warn("Checkout event fields unresolved, defaults substituted",
			zap.String("session_id", sessionID),
			zap.Strings("fields", missing),
		)
	}

	// The session reports its own payment state when the typed payload was
	// readable; an unpaid session stays PENDING until payment_intent.succeeded
	// promotes it. Fallback records are marked COMPLETED, as the event itself
	// is the completion signal.
	status := models.PaymentStatusCompleted
	if details.PaymentStatus != "" && details.PaymentStatus != string(stripe.CheckoutSessionPaymentStatusPaid) {
		status = models.PaymentStatusPending
	}

	txn := models.Transaction{
		StripeSessionID: sessionID,
		CustomerEmail:   details.CustomerEmail,
		TotalAmount:     details.AmountTotal,
		Currency:        details.Currency,
		PaymentStatus:   status,
		TransactionDate: time.Now(),
	}
	if details.PaymentIntentID != "" {
		txn.StripePaymentIntentID = &details.PaymentIntentID
	}

	if err := wc.Repo.Create(ctx, &txn); err != nil {
		if repository.IsDuplicate(err) {
			// The table has two unique columns, so a duplicate-key error is
			// only a redelivery if a row for THIS session exists. Anything
			// else (a payment-intent id collision across sessions) must not
			// be mistaken for already-processed.
			existing, lookupErr := wc.Repo.FindBySessionID(ctx, sessionID)
			if lookupErr == nil && existing != nil {
				wc.Logger.Info("Transaction already recorded by concurrent delivery",
					zap.String("session_id", sessionID))
				return nil
			}
			wc.Logger.Error("Unique constraint conflict on a different column",
				zap.String("session_id", sessionID),
				zap.Stringp("payment_intent_id", txn.StripePaymentIntentID),
			)
		}
		return err
	}

	items := wc.buildTransactionItems(ctx, &txn, sessionID, details)
	if err := wc.Repo.AddItems(ctx, items); err != nil {
		return err
	}

	wc.Logger.Info("Transaction saved",
		zap.String("session_id", sessionID),
		zap.String("status", status),
		zap.Int("items", len(items)),
	)
	return nil
}

// buildTransactionItems reconstructs line items for a transaction, degrading
// to a single synthetic item covering the order total when Stripe cannot be
// queried or returns nothing.
func (wc *WebhookController) buildTransactionItems(ctx context.Context, txn *models.Transaction, sessionID string, details services.CheckoutDetails) []models.TransactionItem {
	var items []models.TransactionItem

	// Only real session ids are retrievable; synthetic fallback keys are not.
	if strings.HasPrefix(sessionID, "cs_") {
		lineItems, err := wc.LineItems.ListLineItems(ctx, sessionID)
		if err != nil {
			wc.Logger.Error("Failed to retrieve line items from Stripe",
				zap.String("session_id", sessionID), zap.Error(err))
		}
		for _, li := range lineItems {
			items = append(items, wc.transactionItemFromLineItem(txn.ID, li))
		}
	}

	if len(items) == 0 {
		wc.Logger.Warn("Could not retrieve line items - creating fallback transaction item",
			zap.String("session_id", sessionID))
		items = append(items, models.TransactionItem{
			TransactionID: txn.ID,
			ProductName:   "Order from " + details.CustomerEmail,
			ProductID:     sessionID,
			Quantity:      1,
			Price:         txn.TotalAmount,
			TotalPrice:    txn.TotalAmount,
		})
	}
	return items
}

// transactionItemFromLineItem maps one Stripe line item, recovering our
// internal product ID from the "[ID:...]" marker in the description. A
// missing marker is a data-quality signal: the Stripe price ID is stored
// instead so the row stays traceable.
func (wc *WebhookController) transactionItemFromLineItem(transactionID uint, li services.SessionLineItem) models.TransactionItem {
	name, productID, ok := services.ParseProductTag(li.Description)
	if !ok {
		productID = li.PriceID
		wc.Logger.Warn("Line description has no product ID marker; using Stripe price ID as fallback",
			zap.String("description", li.Description),
			zap.String("price_id", li.PriceID),
		)
	}

	price := decimal.New(li.UnitAmount, -2)
	return models.TransactionItem{
		TransactionID: transactionID,
		ProductName:   name,
		ProductID:     productID,
		Quantity:      li.Quantity,
		Price:         price,
		TotalPrice:    price.Mul(decimal.NewFromInt(li.Quantity)),
	}
}

// handlePaymentIntentSucceeded promotes a matching transaction to COMPLETED.
// Stripe does not guarantee ordering between checkout and payment-intent
// events, so a missing transaction is a benign no-op: the checkout-completed
// event may simply not have arrived yet.
func (wc *WebhookController) handlePaymentIntentSucceeded(ctx context.Context, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &pi) != nil || pi.ID == "" {
		wc.Logger.Warn("Could not extract payment intent ID from event",
			zap.String("event_id", event.ID))
		return nil
	}

	txn, err := wc.Repo.FindByPaymentIntentID(ctx, pi.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			wc.Logger.Info("No transaction for payment intent yet",
				zap.String("payment_intent_id", pi.ID))
			return nil
		}
		return err
	}

	if txn.PaymentStatus == models.PaymentStatusCompleted {
		return nil
	}

	if err := wc.Repo.UpdatePaymentStatus(ctx, txn.ID, models.PaymentStatusCompleted); err != nil {
		return err
	}
	wc.Logger.Info("Updated payment status for transaction",
		zap.Uint("transaction_id", txn.ID),
		zap.String("payment_intent_id", pi.ID),
	)
	return nil
}
