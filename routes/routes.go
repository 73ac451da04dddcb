package routes

import (
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all HTTP routes.
func RegisterRoutes(
	r *gin.Engine,
	wc *controllers.WebhookController,
	cc *controllers.CheckoutController,
	pc *controllers.ProductController,
	custc *controllers.CustomerController,
) {
	// Stripe webhook (raw body + signature header, no auth)
	r.POST("/stripe/webhook", wc.HandleStripeWebhook)
	r.GET("/stripe/webhook/healthcheck", wc.HealthCheck)

	// Checkout session creation
	checkout := r.Group("/product/v1")
	checkout.POST("/checkout", cc.CheckoutProduct)
	checkout.POST("/cart/checkout", cc.CheckoutCart)

	// Product catalog
	r.POST("/product", pc.AddProduct)
	r.GET("/products", pc.GetProducts)

	// Customer information capture
	r.POST("/checkout", custc.ProcessCheckout)
}
