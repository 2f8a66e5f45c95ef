package main

import (
	"context"

	"inventory-service/internal/handler"
	appmiddleware "inventory-service/internal/middleware"
	"inventory-service/internal/storage"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting inventory service", cfg.LogConfig()...)

	if err := database.Initialize(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	jwtutil.Initialize(&cfg.JWT)

	gcs, err := storage.NewGCSStorage(context.Background(), &cfg.GCS)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	handler.SetImageStorage(gcs)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmiddleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	auth := e.Group("/api/auth")
	auth.POST("/google-login", handler.GoogleLogin)
	auth.POST("/pin-login", handler.PinLogin)

	users := e.Group("/api/users")
	users.GET("", handler.ListUsers)
	users.POST("", handler.CreateUser)
	users.GET("/:id", handler.GetUser)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	api := e.Group("/api", appmiddleware.AuthMiddleware)

	api.POST("/tenants", handler.CreateTenant)
	api.GET("/tenants", handler.ListTenants)
	api.GET("/tenants/:id", handler.GetTenant)

	api.POST("/categories", handler.CreateCategory)
	api.GET("/categories", handler.ListCategories)
	api.GET("/categories/:id", handler.GetCategory)
	api.PUT("/categories/:id", handler.UpdateCategory)
	api.DELETE("/categories/:id", handler.DeleteCategory)

	api.POST("/suppliers", handler.CreateSupplier)
	api.GET("/suppliers", handler.ListSuppliers)
	api.GET("/suppliers/:id", handler.GetSupplier)
	api.PUT("/suppliers/:id", handler.UpdateSupplier)
	api.DELETE("/suppliers/:id", handler.DeleteSupplier)

	api.POST("/inventory-items", handler.CreateInventoryItem)
	api.GET("/inventory-items", handler.ListInventoryItems)
	api.GET("/inventory-items/:id", handler.GetInventoryItem)
	api.PUT("/inventory-items/:id", handler.UpdateInventoryItem)
	api.DELETE("/inventory-items/:id", handler.DeleteInventoryItem)

	// The stock ledger is append-only, so there are no update or delete routes
	api.POST("/stock-transactions", handler.CreateStockTransaction)
	api.GET("/stock-transactions", handler.ListStockTransactions)
	api.GET("/stock-transactions/:id", handler.GetStockTransaction)

	api.POST("/images/upload/inventory", handler.UploadInventoryImage)
	api.POST("/images/upload/profile", handler.UploadProfileImage)
	api.DELETE("/images", handler.DeleteImage)
	api.GET("/images/health", handler.ImageHealthCheck)

	log.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
