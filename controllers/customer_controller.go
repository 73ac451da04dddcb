package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerController struct {
	Repo   repository.CustomerRepository
	Logger *zap.Logger
}

func NewCustomerController(repo repository.CustomerRepository, logger *zap.Logger) *CustomerController {
	return &CustomerController{Repo: repo, Logger: logger}
}

// ProcessCheckout upserts the customer's contact/shipping information,
// keyed on email.
func (cc *CustomerController) ProcessCheckout(c *gin.Context) {
	var info models.CustomerInformation
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if info.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	ctx := c.Request.Context()
	existing, err := cc.Repo.FindByEmail(ctx, info.Email)
	if err == nil {
		existing.FullName = info.FullName
		existing.Country = info.Country
		existing.Address = info.Address
		existing.Apartment = info.Apartment
		existing.City = info.City
		existing.State = info.State
		existing.ZipCode = info.ZipCode
		info = *existing
	} else if !repository.IsNotFound(err) {
		cc.Logger.Error("Failed to look up customer", zap.String("email", info.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process customer information",
			"message": err.Error(),
		})
		return
	}

	if err := cc.Repo.Save(ctx, &info); err != nil {
		cc.Logger.Error("Failed to save customer", zap.String("email", info.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process customer information",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customerId": info.CustomerID,
		"email":      info.Email,
		"message":    "Customer information processed successfully",
	})
}
