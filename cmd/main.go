package main

import (
	"sellor-api/internal/handler"
	"sellor-api/internal/middleware"
	"sellor-api/pkg/aigen"
	"sellor-api/pkg/config"
	"sellor-api/pkg/database"
	"sellor-api/pkg/jwtutil"
	"sellor-api/pkg/logger"
	"sellor-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting storefront API...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utility. A missing signing secret is a fatal
	// configuration error, not something to discover per request.
	if err := jwtutil.Initialize(&cfg.JWT); err != nil {
		log.Fatal("Failed to initialize JWT utility", zap.Error(err))
	}
	log.Info("JWT utility initialized")

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Configure the AI detail generation service (mock provider)
	handler.InitAIHandler(aigen.NewMockGenerator(nil), cfg.Upload.MaxImageBytes)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	// Protected routes - all require a valid vendor token
	api := e.Group("/api")
	api.Use(middleware.Protect)

	// Product catalog, scoped to the authenticated vendor's store
	products := api.Group("/products")
	products.POST("", handler.CreateProduct)
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)

	// Vendor store lookup
	vendors := api.Group("/vendors")
	vendors.GET("/:vendorId/store", handler.GetVendorStore)

	// AI product detail helper
	ai := api.Group("/ai")
	ai.POST("/generate-product-details-from-image", handler.GenerateProductDetails)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
