package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "dispensary-pos/internal/middleware"
	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
	"dispensary-pos/prometheus"
)

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	StrainType    string  `json:"strain_type"`
	THCContent    float64 `json:"thc_content"`
	CBDContent    float64 `json:"cbd_content"`
	ImageURL      string  `json:"image_url"`
}

// StockAdjustmentRequest moves a product's stock up or down and records
// the movement as an inventory transaction.
type StockAdjustmentRequest struct {
	Change          int    `json:"change"`
	TransactionType string `json:"transaction_type"`
	Notes           string `json:"notes"`
}

type ProductHandler struct {
	store store.Store
}

func NewProductHandler(s store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

// List handles retrieving the catalog with optional filtering
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation("list")(time.Now())
	products, err := h.store.Products()
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	// Filter by category if specified
	if category := c.QueryParam("category"); category != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	// Only products with stock, for the register grid
	if inStock := c.QueryParam("in_stock"); inStock != "" {
		if only, err := strconv.ParseBool(inStock); err == nil && only {
			filtered := products[:0:0]
			for _, p := range products {
				if p.StockQuantity > 0 {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		} else if err != nil {
			log.Warn("Invalid in_stock parameter", zap.String("value", inStock), zap.Error(err))
		}
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	product, err := h.store.ProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product name is required"})
	}
	if req.Price < 0 || req.StockQuantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Price and stock must not be negative"})
	}

	product := model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		StrainType:    req.StrainType,
		THCContent:    req.THCContent,
		CBDContent:    req.CBDContent,
		ImageURL:      req.ImageURL,
	}

	defer prometheus.TrackStoreOperation("insert")(time.Now())
	result, err := h.store.InsertProduct(&product)
	if err != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductInventory(strconv.FormatUint(uint64(product.ID), 10), product.Name, product.Category, float64(product.StockQuantity))
	log.Info("Product created successfully",
		zap.Uint("product_id", result.InsertedID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a partial update of an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	var patch model.ProductPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if patch.Price != nil && *patch.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Price must not be negative"})
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Stock must not be negative"})
	}

	defer prometheus.TrackStoreOperation("update")(time.Now())
	result, err := h.store.UpdateProduct(id, patch)
	if err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}
	if !result.Changed {
		log.Warn("Product not found for update", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	prometheus.RecordProductOperation("update")
	product, err := h.store.ProductByID(id)
	if err != nil {
		log.Error("Failed to reload product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	log.Info("Product updated successfully", zap.Uint("product_id", id), zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	defer prometheus.TrackStoreOperation("delete")(time.Now())
	result, err := h.store.DeleteProduct(id)
	if err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}
	if !result.Changed {
		log.Warn("Product not found for deletion", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// AdjustStock applies a stock movement and records an inventory
// transaction for it. The resulting stock may not go negative.
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	var req StockAdjustmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	switch req.TransactionType {
	case model.TransactionSale, model.TransactionRestock, model.TransactionAdjustment:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown transaction type"})
	}

	product, err := h.store.ProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	newStock := product.StockQuantity + req.Change
	if newStock < 0 {
		log.Warn("Stock adjustment would go negative",
			zap.Uint("product_id", id),
			zap.Int("stock", product.StockQuantity),
			zap.Int("change", req.Change))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Insufficient stock"})
	}

	if _, err := h.store.UpdateProduct(id, model.ProductPatch{StockQuantity: &newStock}); err != nil {
		log.Error("Failed to update stock", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update stock"})
	}

	tx := model.InventoryTransaction{
		ProductID:       id,
		TransactionType: req.TransactionType,
		QuantityChange:  req.Change,
		Notes:           req.Notes,
	}
	if employeeID, ok := mid.EmployeeIDFromContext(c); ok {
		tx.EmployeeID = &employeeID
	}
	if _, err := h.store.InsertInventoryTransaction(&tx); err != nil {
		log.Error("Failed to record inventory transaction", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record inventory transaction"})
	}

	prometheus.UpdateProductInventory(strconv.FormatUint(uint64(id), 10), product.Name, product.Category, float64(newStock))
	log.Info("Stock adjusted",
		zap.Uint("product_id", id),
		zap.Int("change", req.Change),
		zap.Int("stock", newStock),
		zap.String("transaction_type", req.TransactionType))

	product.StockQuantity = newStock
	return c.JSON(http.StatusOK, product)
}

// Transactions lists the inventory movements for one product.
func (h *ProductHandler) Transactions(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	transactions, err := h.store.InventoryTransactionsByProductID(id)
	if err != nil {
		log.Error("Failed to list inventory transactions", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve inventory transactions"})
	}
	return c.JSON(http.StatusOK, transactions)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
