package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "dispensary-pos/internal/middleware"
	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// OrderItemRequest is one product line on an incoming order.
type OrderItemRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderRequest defines the structure for back-office order entry
type OrderRequest struct {
	CustomerID      *uint              `json:"customer_id,omitempty"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentStatus   string             `json:"payment_status,omitempty"`
	StripePaymentID string             `json:"stripe_payment_id,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderResponse pairs an order with its line items.
type OrderResponse struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

type OrderHandler struct {
	store store.OrderStore
}

func NewOrderHandler(s store.OrderStore) *OrderHandler {
	return &OrderHandler{store: s}
}

// Create inserts an order and its items. The order and item writes are
// separate statements; there is no transaction wrapping them.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.PaymentMethod == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payment method is required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order must have at least one item"})
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order item"})
		}
	}

	var total float64
	for _, item := range req.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	order := model.Order{
		CustomerID:      req.CustomerID,
		TotalAmount:     total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   req.PaymentStatus,
		StripePaymentID: req.StripePaymentID,
	}
	if employeeID, ok := mid.EmployeeIDFromContext(c); ok {
		order.EmployeeID = &employeeID
	}

	result, err := h.store.InsertOrder(&order)
	if err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItem := model.OrderItem{
			OrderID:    result.InsertedID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.UnitPrice * float64(item.Quantity),
		}
		if _, err := h.store.InsertOrderItem(&orderItem); err != nil {
			log.Error("Failed to create order item",
				zap.Uint("order_id", result.InsertedID),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order item"})
		}
		items = append(items, orderItem)
	}

	log.Info("Order created successfully",
		zap.Uint("order_id", result.InsertedID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("item_count", len(items)))
	return c.JSON(http.StatusCreated, OrderResponse{Order: order, Items: items})
}

func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	orders, err := h.store.Orders()
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns an order together with its line items.
func (h *OrderHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order id"})
	}

	order, err := h.store.OrderByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to get order", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve order"})
	}

	items, err := h.store.OrderItemsByOrderID(id)
	if err != nil {
		log.Error("Failed to list order items", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve order items"})
	}

	return c.JSON(http.StatusOK, OrderResponse{Order: *order, Items: items})
}
