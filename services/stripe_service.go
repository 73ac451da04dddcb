package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"storefront-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.uber.org/zap"
)

// CheckoutProvider builds hosted checkout sessions from cart payloads.
type CheckoutProvider interface {
	Checkout(ctx context.Context, cart *models.CartRequest) *models.CheckoutResponse
	CheckoutProduct(ctx context.Context, req *models.ProductRequest) *models.CheckoutResponse
}

// EventVerifier authenticates an inbound webhook request and decodes the
// event it carries.
type EventVerifier interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// SessionLineItem is the subset of a Stripe checkout line item the webhook
// handler needs to materialize transaction items.
type SessionLineItem struct {
	Description string
	PriceID     string
	Quantity    int64
	UnitAmount  int64 // smallest currency unit
}

// LineItemSource retrieves the line items of a completed checkout session.
type LineItemSource interface {
	ListLineItems(ctx context.Context, sessionID string) ([]SessionLineItem, error)
}

type StripeService struct {
	SecretKey   string
	WebhookKey  string
	FrontendURL string
	Logger      *zap.Logger
}

func NewStripeService(secretKey, webhookKey, frontendURL string, logger *zap.Logger) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		SecretKey:   secretKey,
		WebhookKey:  webhookKey,
		FrontendURL: frontendURL,
		Logger:      logger,
	}
}

// Checkout creates a hosted checkout session for a cart. Items that carry an
// internal product ID get it encoded into the display name so the webhook
// can recover it from the line description later. Upstream failures are
// reported as a structured ERROR response rather than an error value, so the
// frontend always gets a uniform body.
func (s *StripeService) Checkout(ctx context.Context, cart *models.CartRequest) *models.CheckoutResponse {
	currency := cart.Currency
	if currency == "" {
		currency = "usd"
	}
	currency = strings.ToLower(currency)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.FrontendURL + "/success"),
		CancelURL:  stripe.String(s.FrontendURL + "/cancel"),
	}
	params.Context = ctx

	for _, item := range cart.Items {
		productName := item.Name
		if item.ProductID != nil {
			productName = TagProductName(item.Name, strconv.Itoa(*item.ProductID))
		} else {
			s.Logger.Warn("Cart item has no product ID; webhook will fall back to the Stripe price ID",
				zap.String("name", item.Name),
			)
		}

		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.Amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(productName),
				},
			},
		})
	}

	sess, err := session.New(params)
	if err != nil {
		s.Logger.Error("Failed to create checkout session", zap.Error(err))
		return &models.CheckoutResponse{
			Status:  "ERROR",
			Message: "Error creating payment session: " + err.Error(),
		}
	}

	return &models.CheckoutResponse{
		Status:     "SUCCESS",
		Message:    "Payment session created",
		SessionID:  sess.ID,
		SessionURL: sess.URL,
	}
}

// CheckoutProduct is the legacy single-product flow, converted to a one-item
// cart. The legacy payload carries no product ID.
func (s *StripeService) CheckoutProduct(ctx context.Context, req *models.ProductRequest) *models.CheckoutResponse {
	cart := &models.CartRequest{
		Items: []models.ProductItem{{
			Amount:   req.Amount,
			Quantity: req.Quantity,
			Name:     req.Name,
		}},
		Currency: req.Currency,
	}
	return s.Checkout(ctx, cart)
}

// ParseWebhook reads the raw body and verifies the Stripe-Signature header
// against the shared webhook secret. API version mismatches are ignored:
// only the signature decides authenticity here.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEventWithOptions(payload, sigHeader, s.WebhookKey,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
}

// ListLineItems fetches the line items of a checkout session from Stripe.
func (s *StripeService) ListLineItems(ctx context.Context, sessionID string) ([]SessionLineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx

	var items []SessionLineItem
	iter := session.ListLineItems(params)
	for iter.Next() {
		li := iter.LineItem()
		item := SessionLineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
		}
		if li.Price != nil {
			item.PriceID = li.Price.ID
			item.UnitAmount = li.Price.UnitAmount
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
