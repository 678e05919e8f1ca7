package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// EmployeeRequest defines the structure for employee creation requests
type EmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

// EmployeeUpdateRequest is a partial employee update. A non-empty
// password is re-hashed; an empty one leaves the hash untouched.
type EmployeeUpdateRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type EmployeeHandler struct {
	store store.EmployeeStore
}

func NewEmployeeHandler(s store.EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{store: s}
}

func (h *EmployeeHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	employees, err := h.store.Employees()
	if err != nil {
		log.Error("Failed to list employees", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employees"})
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee id"})
	}

	employee, err := h.store.EmployeeByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
		}
		log.Error("Failed to get employee", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employee"})
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	// Employee email is unique
	if _, err := h.store.EmployeeByEmail(req.Email); err == nil {
		log.Warn("Employee with this email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Employee with this email already exists"})
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("Failed to check employee email", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create employee"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create employee"})
	}

	employee := model.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hashed),
	}
	if employee.Role == "" {
		employee.Role = model.RoleBudtender
	}

	result, err := h.store.InsertEmployee(&employee)
	if err != nil {
		log.Error("Failed to create employee", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create employee"})
	}

	log.Info("Employee created successfully",
		zap.Uint("employee_id", result.InsertedID),
		zap.String("email", employee.Email),
		zap.String("role", employee.Role))
	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee id"})
	}

	var req EmployeeUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	patch := model.EmployeePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update employee"})
		}
		hash := string(hashed)
		patch.PasswordHash = &hash
	}

	result, err := h.store.UpdateEmployee(id, patch)
	if err != nil {
		log.Error("Failed to update employee", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update employee"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
	}

	employee, err := h.store.EmployeeByID(id)
	if err != nil {
		log.Error("Failed to reload employee", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employee"})
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee id"})
	}

	result, err := h.store.DeleteEmployee(id)
	if err != nil {
		log.Error("Failed to delete employee", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete employee"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
	}

	log.Info("Employee deleted successfully", zap.Uint("employee_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted successfully"})
}
