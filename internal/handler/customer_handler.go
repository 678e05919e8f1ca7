package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// CustomerRequest defines the structure for customer creation requests
type CustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"date_of_birth"`
	LicenseNumber string `json:"license_number"`
	Address       string `json:"address"`
}

type CustomerHandler struct {
	store store.CustomerStore
}

func NewCustomerHandler(s store.CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: s}
}

func (h *CustomerHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	customers, err := h.store.Customers()
	if err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customers"})
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid customer id"})
	}

	customer, err := h.store.CustomerByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
		}
		log.Error("Failed to get customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customer"})
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "First and last name are required"})
	}

	customer := model.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		LicenseNumber: req.LicenseNumber,
		Address:       req.Address,
	}

	result, err := h.store.InsertCustomer(&customer)
	if err != nil {
		log.Error("Failed to create customer", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create customer"})
	}

	log.Info("Customer created successfully", zap.Uint("customer_id", result.InsertedID))
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid customer id"})
	}

	var patch model.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	result, err := h.store.UpdateCustomer(id, patch)
	if err != nil {
		log.Error("Failed to update customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update customer"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	}

	customer, err := h.store.CustomerByID(id)
	if err != nil {
		log.Error("Failed to reload customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customer"})
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid customer id"})
	}

	result, err := h.store.DeleteCustomer(id)
	if err != nil {
		log.Error("Failed to delete customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete customer"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	}

	log.Info("Customer deleted successfully", zap.Uint("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted successfully"})
}
