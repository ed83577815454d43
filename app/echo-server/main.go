package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shirtshop/app/echo-server/router"
	"shirtshop/business/inventory"
	"shirtshop/business/orders"
	"shirtshop/business/product"
	"shirtshop/business/settings"
	"shirtshop/domain"
	"shirtshop/internal/middleware"
	"shirtshop/internal/repository/cloudinary"
	psqlRepo "shirtshop/internal/repository/postgres"
	redisRepo "shirtshop/internal/repository/redis"
	"shirtshop/internal/rest"
	"shirtshop/pkg/config"
	"shirtshop/pkg/database"
	redisdb "shirtshop/pkg/database/redis"
	"shirtshop/pkg/logger"
	"shirtshop/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Shirtshop", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := db.AutoMigrate(
		&domain.Product{},
		&domain.Cart{},
		&domain.Address{},
		&domain.Order{},
		&domain.PaymentSettings{},
	); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	// Redis backs the cross-process tracking tag sequence. The generator has
	// a local fallback, so a missing redis is a warning, not a hard failure.
	var tagSeq orders.TagSequence
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, tracking tags use the local counter", "error", err.Error())
	} else {
		tagSeq = redisRepo.NewTagSequenceRepository(redisClient)
		defer redisdb.CloseRedisClient(redisClient)
	}

	slipStorage := cloudinary.NewCloudinaryRepository(
		cloudinary.CloudinaryConfig{
			CloudName:    cfg.Cloudinary.CloudName,
			UploadPreset: cfg.Cloudinary.UploadPreset,
			SlipFolder:   cfg.Cloudinary.SlipFolder,
		},
	)

	// Init repo
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	addressRepo := psqlRepo.NewAddressRepository(db)
	settingsRepo := psqlRepo.NewSettingsRepository(db)

	// Init service
	inventoryService := inventory.NewService(productsRepo)
	settingsService := settings.NewService(settingsRepo, settings.Defaults{
		Target:        cfg.Payment.PromptPayTarget,
		ExpireMinutes: cfg.Payment.PromptPayExpireMins,
	})
	productService := product.NewService(productsRepo)
	ordersService := orders.NewOrdersService(
		ordersRepo,
		cartRepo,
		addressRepo,
		slipStorage,
		inventoryService,
		settingsService,
		orders.NewTrackingTagGenerator(tagSeq),
	)

	// Init handler
	ordersHandler := rest.NewOrdersHandler(ordersService)
	adminOrdersHandler := rest.NewAdminOrdersHandler(ordersService)
	productHandler := rest.NewProductHandler(productService)
	settingsHandler := rest.NewSettingsHandler(settingsService)

	// Expiry sweeper
	sweeper := orders.NewSweeper(
		ordersService,
		time.Duration(cfg.Payment.SweepIntervalSeconds)*time.Second,
		cfg.Payment.SweepBatchSize,
	)
	sweeper.Start()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetAdminOrdersRoutes(api, adminOrdersHandler)
	router.SetAdminProductRoutes(api, productHandler)
	router.SetSettingsRoutes(api, settingsHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
