package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/controllers"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockCheckoutProvider struct {
	lastCart    *models.CartRequest
	lastProduct *models.ProductRequest
	resp        *models.CheckoutResponse
}

func (m *mockCheckoutProvider) Checkout(_ context.Context, req *models.CartRequest) *models.CheckoutResponse {
	m.lastCart = req
	return m.resp
}

func (m *mockCheckoutProvider) CheckoutProduct(_ context.Context, req *models.ProductRequest) *models.CheckoutResponse {
	m.lastProduct = req
	return m.resp
}

func newCheckoutRouter(provider *mockCheckoutProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	cc := controllers.NewCheckoutController(provider, logger)

	r := gin.New()
	r.POST("/product/v1/cart/checkout", cc.CheckoutCart)
	r.POST("/product/v1/checkout", cc.CheckoutProduct)
	return r
}

func TestCheckoutCart_Success(t *testing.T) {
	provider := &mockCheckoutProvider{resp: &models.CheckoutResponse{
		Status:     "SUCCESS",
		Message:    "Payment session created successfully",
		SessionID:  "cs_test_1",
		SessionURL: "https://checkout.stripe.com/pay/cs_test_1",
	}}
	r := newCheckoutRouter(provider)

	body, _ := json.Marshal(models.CartRequest{
		Items: []models.ProductItem{
			{Amount: 999, Quantity: 2, Name: "Mug", ProductID: intPtr(7)},
			{Amount: 500, Quantity: 1, Name: "Sticker"},
		},
		Currency: "usd",
	})
	req := httptest.NewRequest(http.MethodPost, "/product/v1/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CheckoutResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SUCCESS", resp.Status)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", resp.SessionURL)

	if assert.NotNil(t, provider.lastCart) {
		assert.Len(t, provider.lastCart.Items, 2)
		assert.Equal(t, "usd", provider.lastCart.Currency)
	}
}

func TestCheckoutCart_InvalidBody(t *testing.T) {
	provider := &mockCheckoutProvider{}
	r := newCheckoutRouter(provider)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"items":`},
		{"empty cart", `{"items":[],"currency":"usd"}`},
		{"zero quantity", `{"items":[{"amount":999,"quantity":0,"name":"Mug"}]}`},
		{"missing name", `{"items":[{"amount":999,"quantity":1}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/product/v1/cart/checkout", bytes.NewReader([]byte(tc.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, provider.lastCart)
		})
	}
}

func TestCheckoutProduct_Success(t *testing.T) {
	provider := &mockCheckoutProvider{resp: &models.CheckoutResponse{
		Status:    "SUCCESS",
		Message:   "Payment session created successfully",
		SessionID: "cs_test_2",
	}}
	r := newCheckoutRouter(provider)

	body, _ := json.Marshal(models.ProductRequest{Amount: 2500, Quantity: 1, Name: "Lamp", Currency: "eur"})
	req := httptest.NewRequest(http.MethodPost, "/product/v1/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, provider.lastProduct) {
		assert.Equal(t, "Lamp", provider.lastProduct.Name)
		assert.Equal(t, int64(2500), provider.lastProduct.Amount)
	}
}

func TestCheckoutProvider_ErrorStatusPassesThrough(t *testing.T) {
	// Provider failures surface as an ERROR-status body, not an HTTP error.
	provider := &mockCheckoutProvider{resp: &models.CheckoutResponse{
		Status:  "ERROR",
		Message: "Failed to create payment session",
	}}
	r := newCheckoutRouter(provider)

	body, _ := json.Marshal(models.ProductRequest{Amount: 100, Quantity: 1, Name: "Pin"})
	req := httptest.NewRequest(http.MethodPost, "/product/v1/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CheckoutResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERROR", resp.Status)
	assert.Empty(t, resp.SessionID)
}

func intPtr(v int) *int { return &v }
