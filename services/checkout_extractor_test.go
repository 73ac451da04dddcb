package services_test

import (
	"encoding/json"
	"testing"

	"storefront-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
)

func eventWithRaw(raw string) stripe.Event {
	return stripe.Event{
		ID:   "evt_test_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestExtractCheckoutDetails_Structured(t *testing.T) {
	ev := eventWithRaw(`{
		"id": "cs_test_abc",
		"object": "checkout.session",
		"amount_total": 1998,
		"currency": "usd",
		"customer_details": {"email": "jane@example.com"},
		"payment_intent": "pi_test_abc",
		"payment_status": "paid"
	}`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Empty(t, missing)
	assert.Equal(t, "cs_test_abc", details.SessionID)
	assert.Equal(t, "pi_test_abc", details.PaymentIntentID)
	assert.Equal(t, "jane@example.com", details.CustomerEmail)
	assert.Equal(t, "usd", details.Currency)
	assert.Equal(t, "19.98", details.AmountTotal.StringFixed(2))
	assert.Equal(t, "paid", details.PaymentStatus)
}

func TestExtractCheckoutDetails_RawScanFallback(t *testing.T) {
	// Not valid JSON: the structured tier fails, the raw scan recovers the
	// fields by substring search.
	ev := eventWithRaw(`{"id":"cs_raw_123","payment_intent":"pi_raw_123",` +
		`"customer_details":{"email":"raw@example.com"},"amount_total":2500,"currency":"eur",`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Empty(t, missing)
	assert.Equal(t, "cs_raw_123", details.SessionID)
	assert.Equal(t, "pi_raw_123", details.PaymentIntentID)
	assert.Equal(t, "raw@example.com", details.CustomerEmail)
	assert.Equal(t, "eur", details.Currency)
	assert.Equal(t, "25.00", details.AmountTotal.StringFixed(2))
	assert.Empty(t, details.PaymentStatus)
}

func TestExtractCheckoutDetails_Defaults(t *testing.T) {
	ev := eventWithRaw(`{}`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.ElementsMatch(t, []string{
		services.FieldSessionID,
		services.FieldPaymentIntent,
		services.FieldCustomerEmail,
		services.FieldAmountTotal,
		services.FieldCurrency,
	}, missing)
	assert.Empty(t, details.SessionID)
	assert.Equal(t, services.DefaultCustomerEmail, details.CustomerEmail)
	assert.Equal(t, services.DefaultCurrency, details.Currency)
	assert.True(t, details.AmountTotal.IsZero())
}

func TestExtractCheckoutDetails_NullPaymentIntentStaysUnresolved(t *testing.T) {
	// Subscription-mode and fully-discounted sessions carry a null payment
	// intent. The raw scan must not wander past the null and capture the next
	// key's name as if it were the value.
	ev := eventWithRaw(`{"id":"cs_live_x1","amount_total":0,"currency":"usd",` +
		`"payment_intent":null,"payment_status":"unpaid"}`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Equal(t, "cs_live_x1", details.SessionID)
	assert.Empty(t, details.PaymentIntentID)
	assert.Contains(t, missing, services.FieldPaymentIntent)
}

func TestExtractCheckoutDetails_RawScanNullValues(t *testing.T) {
	// Malformed payload so the structured tier fails; every null field must
	// land on the unresolved list with its default substituted.
	ev := eventWithRaw(`{"id":"cs_raw_null","payment_intent":null,` +
		`"customer_details":{"email":null},"amount_total":1500,"currency":null,`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Equal(t, "cs_raw_null", details.SessionID)
	assert.Empty(t, details.PaymentIntentID)
	assert.Equal(t, services.DefaultCustomerEmail, details.CustomerEmail)
	assert.Equal(t, services.DefaultCurrency, details.Currency)
	assert.Equal(t, "15.00", details.AmountTotal.StringFixed(2))
	assert.ElementsMatch(t, []string{
		services.FieldPaymentIntent,
		services.FieldCustomerEmail,
		services.FieldCurrency,
	}, missing)
}

func TestExtractCheckoutDetails_NonSessionIDIgnored(t *testing.T) {
	// The object id must look like a checkout session; anything else falls
	// through so the caller derives a synthetic key.
	ev := eventWithRaw(`{"id":"pi_not_a_session","amount_total":500,"currency":"usd"}`)

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Empty(t, details.SessionID)
	assert.Contains(t, missing, services.FieldSessionID)
	assert.Equal(t, "5.00", details.AmountTotal.StringFixed(2))
}

func TestExtractCheckoutDetails_NilData(t *testing.T) {
	ev := stripe.Event{ID: "evt_nil", Type: "checkout.session.completed"}

	details, missing := services.ExtractCheckoutDetails(ev)

	assert.Len(t, missing, 5)
	assert.Equal(t, services.DefaultCustomerEmail, details.CustomerEmail)
}
