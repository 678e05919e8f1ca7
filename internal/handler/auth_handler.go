package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/jwtutil"
	"dispensary-pos/pkg/logger"
	"dispensary-pos/prometheus"
)

type AuthHandler struct {
	store store.EmployeeStore
}

func NewAuthHandler(s store.EmployeeStore) *AuthHandler {
	return &AuthHandler{store: s}
}

// Login authenticates an employee and issues a JWT
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	employee, err := h.store.EmployeeByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Employee not found", zap.String("email", req.Email))
			prometheus.RecordAuthError("employee_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Failed to look up employee", zap.Error(err))
		prometheus.RecordAuthError("store_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(employee.Email, employee.ID, employee.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("Employee logged in",
		zap.String("email", employee.Email),
		zap.String("role", employee.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"employee": map[string]interface{}{
			"id":    employee.ID,
			"email": employee.Email,
			"role":  employee.Role,
		},
	})
}
