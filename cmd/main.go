package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dispensary-pos/internal/handler"
	mid "dispensary-pos/internal/middleware"
	"dispensary-pos/internal/model"
	"dispensary-pos/internal/pos"
	"dispensary-pos/internal/store"
	"dispensary-pos/internal/store/kvstore"
	"dispensary-pos/internal/store/sqlstore"
	"dispensary-pos/pkg/config"
	"dispensary-pos/pkg/database"
	"dispensary-pos/pkg/jwtutil"
	"dispensary-pos/pkg/logger"
	"dispensary-pos/prometheus"
)

func main() {
	// Load configuration (including .env when present)
	appConfig, err := config.Load("dispensary-pos")
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

	log.Info("Starting dispensary-pos", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Open the persistence backend. The handle is built once here and
	// passed to every handler.
	var posStore store.Store
	switch appConfig.Store.Driver {
	case config.DriverBolt:
		posStore, err = kvstore.Open(appConfig.Store.BoltPath)
		if err != nil {
			log.Fatal("Failed to open record store", zap.Error(err))
		}
		log.Info("Record store opened", zap.String("path", appConfig.Store.BoltPath))
	default:
		db, err := database.Open(appConfig)
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		posStore = sqlstore.New(db)
		log.Info("Database connection established", zap.String("driver", appConfig.Store.Driver))
	}
	defer posStore.Close()

	// Handlers
	authHandler := handler.NewAuthHandler(posStore)
	productHandler := handler.NewProductHandler(posStore)
	customerHandler := handler.NewCustomerHandler(posStore)
	employeeHandler := handler.NewEmployeeHandler(posStore)
	orderHandler := handler.NewOrderHandler(posStore)
	listingHandler := handler.NewListingHandler(posStore)
	dispensaryHandler := handler.NewDispensaryHandler(posStore)
	posHandler := handler.NewPOSHandler(posStore, pos.NewManager())
	exportHandler := handler.NewExportHandler(posStore)
	reportHandler := handler.NewReportHandler(posStore)

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

	// Employee login
	e.POST("/api/auth/login", authHandler.Login)

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create)
	productAPI.PUT("/:id", productHandler.Update)
	productAPI.DELETE("/:id", productHandler.Delete)
	productAPI.POST("/:id/stock", productHandler.AdjustStock)
	productAPI.GET("/:id/transactions", productHandler.Transactions)

	// Customer API routes
	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", customerHandler.List)
	customerAPI.GET("/:id", customerHandler.Get)
	customerAPI.POST("", customerHandler.Create)
	customerAPI.PUT("/:id", customerHandler.Update)
	customerAPI.DELETE("/:id", customerHandler.Delete)

	// Employee API routes - admin only
	employeeAPI := e.Group("/api/employees", mid.AuthMiddleware, mid.RequireRole(model.RoleAdmin))
	employeeAPI.GET("", employeeHandler.List)
	employeeAPI.GET("/:id", employeeHandler.Get)
	employeeAPI.POST("", employeeHandler.Create)
	employeeAPI.PUT("/:id", employeeHandler.Update)
	employeeAPI.DELETE("/:id", employeeHandler.Delete)

	// Order API routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.GET("", orderHandler.List)
	orderAPI.GET("/:id", orderHandler.Get)
	orderAPI.POST("", orderHandler.Create)

	// Marketplace listing API routes
	listingAPI := e.Group("/api/weedmaps/products", mid.AuthMiddleware)
	listingAPI.GET("", listingHandler.List)
	listingAPI.GET("/:id", listingHandler.Get)
	listingAPI.POST("", listingHandler.Create)
	listingAPI.PUT("/:id", listingHandler.Update)
	listingAPI.DELETE("/:id", listingHandler.Delete)

	// Dispensary directory API routes
	dispensaryAPI := e.Group("/api/dispensaries", mid.AuthMiddleware)
	dispensaryAPI.GET("", dispensaryHandler.List)
	dispensaryAPI.GET("/:id", dispensaryHandler.Get)
	dispensaryAPI.POST("", dispensaryHandler.Create)
	dispensaryAPI.PUT("/:id", dispensaryHandler.Update)
	dispensaryAPI.DELETE("/:id", dispensaryHandler.Delete)

	// Register (cart/checkout) API routes
	posAPI := e.Group("/api/pos/:register", mid.AuthMiddleware)
	posAPI.GET("/cart", posHandler.Cart)
	posAPI.POST("/cart/items", posHandler.AddItem)
	posAPI.PUT("/cart/items/:product_id", posHandler.SetQuantity)
	posAPI.DELETE("/cart/items/:product_id", posHandler.RemoveItem)
	posAPI.POST("/checkout", posHandler.Checkout)

	// Export API routes
	exportAPI := e.Group("/api/export", mid.AuthMiddleware)
	exportAPI.GET("/all", exportHandler.All)
	exportAPI.GET("/:table", exportHandler.Table)

	// Report API routes
	e.GET("/api/dashboard/stats", reportHandler.DashboardStats, mid.AuthMiddleware)
	e.GET("/api/reports/summary", reportHandler.Summary, mid.AuthMiddleware)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
