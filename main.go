package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	if err := database.Connect(logger,
		&models.Transaction{},
		&models.TransactionItem{},
		&models.Product{},
		&models.CustomerInformation{},
	); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close()

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- Dependency injection ---
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.FrontendURL, logger)
	transactionRepo := repository.NewGormTransactionRepo(database.DB)
	productRepo := repository.NewGormProductRepo(database.DB)
	customerRepo := repository.NewGormCustomerRepo(database.DB)

	wc := &controllers.WebhookController{
		Repo:      transactionRepo,
		Verifier:  stripeSvc,
		LineItems: stripeSvc,
		Logger:    logger,
	}
	cc := controllers.NewCheckoutController(stripeSvc, logger)
	pc := controllers.NewProductController(productRepo, logger)
	custc := controllers.NewCustomerController(customerRepo, logger)

	routes.RegisterRoutes(r, wc, cc, pc, custc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "storefront-service"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
