package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	Repo   repository.ProductRepository
	Logger *zap.Logger
}

func NewProductController(repo repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{Repo: repo, Logger: logger}
}

func (pc *ProductController) AddProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.Repo.Create(c.Request.Context(), &product); err != nil {
		pc.Logger.Error("Failed to save product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.Repo.FindAll(c.Request.Context())
	if err != nil {
		pc.Logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
