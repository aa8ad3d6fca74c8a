package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"order_studio/internal/config"
	"order_studio/internal/database"
	"order_studio/internal/handlers"
	"order_studio/internal/lifecycle"
	"order_studio/internal/migrations"
	"order_studio/internal/pricing"
	"order_studio/internal/redis"
	"order_studio/internal/repository"
	"order_studio/internal/services"
	"order_studio/internal/store"
	"order_studio/pkg/whatsapp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := migrations.RunMigrations(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	recordStore := store.NewGormStore(db)

	// Id allocation: an atomic Redis sequence when available, max-scan
	// compatibility mode otherwise.
	var ids repository.IDSource = repository.MaxScanIDSource{}
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		if err := redisClient.SeedOrderSequence(context.Background(), maxLedgerID(recordStore)); err != nil {
			logger.Fatal("failed to seed order sequence", zap.Error(err))
		}
		ids = repository.NewSequenceIDSource(redisClient)
		logger.Info("order ids allocated from Redis sequence")
	} else {
		logger.Info("order ids allocated by table max-scan")
	}

	// Initialize collaborators
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
	mailer := services.NewSMTPMailer(cfg.SMTPServer, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)

	notifier := services.NewNotifierService(whatsappClient, mailer, services.NotifierConfig{
		CountryCode: cfg.CountryCode,
		OwnerPhone:  cfg.OwnerPhone,
		OwnerEmail:  cfg.OwnerEmail,
		UPIAddress:  cfg.UPIAddress,
		UPIName:     cfg.UPIName,
	}, logger)

	priceEngine := pricing.NewEngine(
		pricing.PrintRates{BlackWhite: cfg.BWRate, Color: cfg.ColorRate, Glossy: cfg.GlossyRate},
		cakeRates(cfg),
	)

	// Initialize repositories and services
	orderRepo := repository.NewOrderRepository(recordStore, ids, logger)
	orderService := services.NewOrderService(orderRepo, priceEngine, lifecycle.New(cfg.StrictLifecycle), notifier, logger)
	receiptService := services.NewReceiptService(cfg.FilesDir, logger)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService, receiptService)

	secretHash, err := bcrypt.GenerateFromPassword([]byte(cfg.StaffSecret), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("failed to hash staff secret", zap.Error(err))
	}

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.SubmitOrder)
		api.GET("/orders/track", orderHandler.TrackOrders)

		staff := api.Group("/staff", handlers.StaffAuth(secretHash))
		{
			staff.GET("/orders", orderHandler.ListOrders)
			staff.PUT("/orders/:id", orderHandler.UpdateOrder)
			staff.GET("/orders/:id/receipt", orderHandler.GetReceipt)
			staff.GET("/orders/:id/archive", orderHandler.GetArchive)
		}
	}

	// Start server
	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func maxLedgerID(recordStore store.RecordStore) uint {
	rows, err := recordStore.Read(context.Background())
	if err != nil {
		return 0
	}
	var max uint
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

func cakeRates(cfg *config.Config) pricing.CakeRates {
	rates := pricing.DefaultCakeRates()
	rates.Topping = cfg.ToppingRate
	return rates
}
