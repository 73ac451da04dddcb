package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutController exposes the hosted-checkout endpoints.
type CheckoutController struct {
	Provider services.CheckoutProvider
	Logger   *zap.Logger
}

func NewCheckoutController(provider services.CheckoutProvider, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Provider: provider, Logger: logger}
}

// CheckoutCart creates a checkout session for a multi-item cart.
func (cc *CheckoutController) CheckoutCart(c *gin.Context) {
	var req models.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := cc.Provider.Checkout(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}

// CheckoutProduct is the legacy single-product checkout endpoint.
func (cc *CheckoutController) CheckoutProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := cc.Provider.CheckoutProduct(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
