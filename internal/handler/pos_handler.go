package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/pos"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
	"dispensary-pos/prometheus"
)

// CartResponse is the register cart with its running total.
type CartResponse struct {
	Items []pos.Item `json:"items"`
	Total float64    `json:"total"`
}

type POSHandler struct {
	store store.ProductStore
	carts *pos.Manager
}

func NewPOSHandler(s store.ProductStore, carts *pos.Manager) *POSHandler {
	return &POSHandler{store: s, carts: carts}
}

func (h *POSHandler) register(c echo.Context) *pos.Register {
	return h.carts.Register(c.Param("register"))
}

// Cart returns the register's current cart lines and total.
func (h *POSHandler) Cart(c echo.Context) error {
	register := h.register(c)
	return c.JSON(http.StatusOK, CartResponse{
		Items: register.Items(),
		Total: register.Total(),
	})
}

// AddItem adds one unit of a product to the cart, capped at the
// product's current stock.
func (h *POSHandler) AddItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.store.ProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint("product_id", req.ProductID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	register := h.register(c)
	if err := register.AddProduct(*product); err != nil {
		log.Warn("Stock limit reached",
			zap.Uint("product_id", product.ID),
			zap.Int("stock", product.StockQuantity))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Cannot add more items than available in stock"})
	}

	return c.JSON(http.StatusOK, CartResponse{
		Items: register.Items(),
		Total: register.Total(),
	})
}

// SetQuantity replaces a cart line's quantity; zero removes the line.
func (h *POSHandler) SetQuantity(c echo.Context) error {
	log := logger.FromContext(c)

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	register := h.register(c)
	if err := register.SetQuantity(uint(productID), req.Quantity); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Cannot add more items than available in stock"})
	}

	return c.JSON(http.StatusOK, CartResponse{
		Items: register.Items(),
		Total: register.Total(),
	})
}

// RemoveItem drops a cart line.
func (h *POSHandler) RemoveItem(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	register := h.register(c)
	register.Remove(uint(productID))

	return c.JSON(http.StatusOK, CartResponse{
		Items: register.Items(),
		Total: register.Total(),
	})
}

// Checkout totals the cart, drains it, and returns a receipt. No order
// record is written here.
func (h *POSHandler) Checkout(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	receipt, err := h.register(c).Checkout(req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrEmptyCart):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please add items to cart before checkout"})
		case errors.Is(err, pos.ErrUnknownPayment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown payment method"})
		default:
			log.Error("Checkout failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Checkout failed"})
		}
	}

	prometheus.RecordCheckout(receipt.PaymentMethod, receipt.Total, len(receipt.Items))
	log.Info("Checkout successful",
		zap.String("register", c.Param("register")),
		zap.String("payment_method", receipt.PaymentMethod),
		zap.Float64("total", receipt.Total),
		zap.Int("lines", len(receipt.Items)))

	return c.JSON(http.StatusOK, receipt)
}
