package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/pkg/jwtutil"
	"dispensary-pos/pkg/logger"
)

// AuthMiddleware validates the JWT token and extracts the employee identity
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store employee info in context for later use
		c.Set("employee_id", claims.EmployeeID)
		c.Set("email", claims.Email)
		c.Set("employee_role", claims.Role)

		return next(c)
	}
}

// RequireRole guards a route group behind a single employee role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get("employee_role").(string)
			if got != role {
				logger.FromContext(c).Warn("Insufficient role for route",
					zap.String("required", role),
					zap.String("role", got))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// EmployeeIDFromContext retrieves the authenticated employee id, when present.
func EmployeeIDFromContext(c echo.Context) (uint, bool) {
	id, ok := c.Get("employee_id").(uint)
	return id, ok
}
