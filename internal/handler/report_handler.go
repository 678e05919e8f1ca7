package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// Products with stock below this show up as low-stock on the dashboard.
const lowStockThreshold = 10

type ReportHandler struct {
	store store.Store
}

func NewReportHandler(s store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// DashboardStats returns the front-page counters.
func (h *ReportHandler) DashboardStats(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.store.Products()
	if err != nil {
		log.Error("Failed to load products for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard stats"})
	}
	customers, err := h.store.Customers()
	if err != nil {
		log.Error("Failed to load customers for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard stats"})
	}

	lowStock := 0
	for _, p := range products {
		if p.StockQuantity < lowStockThreshold {
			lowStock++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_products":     len(products),
		"low_stock_products": lowStock,
		"total_customers":    len(customers),
	})
}

// Summary aggregates sales and stock figures for the reports page.
func (h *ReportHandler) Summary(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.store.Products()
	if err != nil {
		log.Error("Failed to load products for report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
	}
	orders, err := h.store.Orders()
	if err != nil {
		log.Error("Failed to load orders for report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
	}

	var totalRevenue float64
	for _, o := range orders {
		totalRevenue += o.TotalAmount
	}
	averageOrderValue := 0.0
	if len(orders) > 0 {
		averageOrderValue = totalRevenue / float64(len(orders))
	}

	var lowStock []model.Product
	categories := map[string]int{}
	for _, p := range products {
		if p.StockQuantity < lowStockThreshold {
			lowStock = append(lowStock, p)
		}
		category := p.Category
		if category == "" {
			category = "uncategorized"
		}
		categories[category]++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_revenue":       totalRevenue,
		"total_orders":        len(orders),
		"average_order_value": averageOrderValue,
		"low_stock_products":  lowStock,
		"category_breakdown":  categories,
	})
}
