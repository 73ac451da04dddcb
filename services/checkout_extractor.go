package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
)

// Field names reported as unresolved by the extractor chain.
const (
	FieldSessionID     = "session_id"
	FieldPaymentIntent = "payment_intent"
	FieldCustomerEmail = "customer_email"
	FieldAmountTotal   = "amount_total"
	FieldCurrency      = "currency"
)

// Defaults substituted for fields no extractor could resolve. A placeholder
// record is preferable to a dropped payment event; these values flag the row
// for manual reconciliation.
const (
	DefaultCustomerEmail = "webhook@example.com"
	DefaultCurrency      = "usd"
)

// CheckoutDetails is what the webhook handler needs from a
// checkout.session.completed event. PaymentStatus is only populated by the
// structured extractor; it is empty when the payload could not be decoded.
type CheckoutDetails struct {
	SessionID       string
	PaymentIntentID string
	CustomerEmail   string
	Currency        string
	AmountTotal     decimal.Decimal
	PaymentStatus   string
}

// ExtractCheckoutDetails runs the extractor chain over a verified event:
// first the typed payload, then a raw-text scan for whatever is still
// unresolved, then documented defaults. The returned list names the fields
// that fell through to a default (or, for session_id, stayed empty); a
// non-empty list is a data-quality signal, not an error.
func ExtractCheckoutDetails(event stripe.Event) (CheckoutDetails, []string) {
	var details CheckoutDetails
	have := make(map[string]bool)

	for _, extract := range []func(stripe.Event, *CheckoutDetails, map[string]bool){
		extractStructured,
		extractRawScan,
	} {
		extract(event, &details, have)
	}

	var missing []string
	if !have[FieldSessionID] {
		missing = append(missing, FieldSessionID)
	}
	if !have[FieldPaymentIntent] {
		missing = append(missing, FieldPaymentIntent)
	}
	if !have[FieldCustomerEmail] {
		details.CustomerEmail = DefaultCustomerEmail
		missing = append(missing, FieldCustomerEmail)
	}
	if !have[FieldAmountTotal] {
		details.AmountTotal = decimal.Zero
		missing = append(missing, FieldAmountTotal)
	}
	if !have[FieldCurrency] {
		details.Currency = DefaultCurrency
		missing = append(missing, FieldCurrency)
	}
	return details, missing
}

// extractStructured decodes the event payload as a typed checkout session.
func extractStructured(event stripe.Event, details *CheckoutDetails, have map[string]bool) {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return
	}

	if strings.HasPrefix(sess.ID, "cs_") {
		details.SessionID = sess.ID
		have[FieldSessionID] = true
	}
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		details.PaymentIntentID = sess.PaymentIntent.ID
		have[FieldPaymentIntent] = true
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		details.CustomerEmail = sess.CustomerDetails.Email
		have[FieldCustomerEmail] = true
	} else if sess.CustomerEmail != "" {
		details.CustomerEmail = sess.CustomerEmail
		have[FieldCustomerEmail] = true
	}
	if sess.AmountTotal > 0 {
		details.AmountTotal = decimal.New(sess.AmountTotal, -2)
		have[FieldAmountTotal] = true
	}
	if sess.Currency != "" {
		details.Currency = string(sess.Currency)
		have[FieldCurrency] = true
	}
	details.PaymentStatus = string(sess.PaymentStatus)
}

// extractRawScan recovers still-missing fields by substring search over the
// raw payload. Deliberately not a JSON decode: this tier exists for payloads
// the typed path could not handle.
func extractRawScan(event stripe.Event, details *CheckoutDetails, have map[string]bool) {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return
	}
	raw := string(event.Data.Raw)

	if !have[FieldSessionID] {
		if id, ok := scanQuoted(raw, `"id":`); ok && strings.HasPrefix(id, "cs_") {
			details.SessionID = id
			have[FieldSessionID] = true
		}
	}
	if !have[FieldPaymentIntent] {
		if pi, ok := scanQuoted(raw, `"payment_intent":`); ok && pi != "" {
			details.PaymentIntentID = pi
			have[FieldPaymentIntent] = true
		}
	}
	if !have[FieldCustomerEmail] {
		if idx := strings.Index(raw, `"customer_details":`); idx >= 0 {
			if email, ok := scanQuoted(raw[idx:], `"email":`); ok && email != "" {
				details.CustomerEmail = email
				have[FieldCustomerEmail] = true
			}
		}
	}
	if !have[FieldAmountTotal] {
		if cents, ok := scanInt(raw, `"amount_total":`); ok {
			details.AmountTotal = decimal.New(cents, -2)
			have[FieldAmountTotal] = true
		}
	}
	if !have[FieldCurrency] {
		if cur, ok := scanQuoted(raw, `"currency":`); ok && cur != "" {
			details.Currency = cur
			have[FieldCurrency] = true
		}
	}
}

// scanQuoted finds `key` and returns the quoted string value following it.
// The value must start immediately after the key (whitespace aside): a null
// or non-string value reports not-found rather than skipping ahead and
// capturing text belonging to some later key.
func scanQuoted(raw, key string) (string, bool) {
	idx := strings.Index(raw, key)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(raw[idx+len(key):], " \t\r\n")
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	rest = rest[1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// scanInt finds `key` and parses the bare integer following it.
func scanInt(raw, key string) (int64, bool) {
	idx := strings.Index(raw, key)
	if idx < 0 {
		return 0, false
	}
	rest := strings.TrimLeft(raw[idx+len(key):], " ")
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r != '-' && (r < '0' || r > '9')
	})
	if end < 0 {
		end = len(rest)
	}
	n, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
