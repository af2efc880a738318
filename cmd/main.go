package main

import (
	"context"
	"net/http"

	"shoppinglist-service/internal/handler"
	mid "shoppinglist-service/internal/middleware"
	"shoppinglist-service/internal/repository"
	"shoppinglist-service/internal/service"
	"shoppinglist-service/pkg/config"
	"shoppinglist-service/pkg/database"
	"shoppinglist-service/pkg/logger"
	"shoppinglist-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load("shoppinglist-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting shoppinglist-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	if appConfig.API.Key == "" {
		log.Warn("No API key configured, all API requests will be rejected")
	}

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established", zap.String("path", appConfig.DB.Path))

	// Seed the fixed category set on first start
	repo := repository.NewGormRepository(database.GetDB())
	if err := repo.SeedCategories(context.Background(), appConfig.Seed.Categories); err != nil {
		log.Fatal("Failed to seed categories", zap.Error(err))
	}

	catalog := service.NewCatalogService(repo)
	availability := service.NewAvailabilityService(repo)
	composer := service.NewViewComposer(repo)

	itemHandler := handler.NewItemHandler(catalog, availability)
	availabilityHandler := handler.NewAvailabilityHandler(availability)
	viewHandler := handler.NewViewHandler(composer)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes - every request must carry the shared API key
	api := e.Group("/api", mid.APIKeyMiddleware(appConfig.API.Key))
	api.GET("/items", itemHandler.ListItems)
	api.POST("/items", itemHandler.CreateItem)
	api.PATCH("/availability/:itemId", availabilityHandler.SetAvailability)
	api.POST("/availability/:itemId", availabilityHandler.SetAvailability)
	api.GET("/views", viewHandler.GetViews)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
