package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispensary-pos/pkg/config"
	"dispensary-pos/pkg/jwtutil"
)

func init() {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
}

func runAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := AuthMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("dana@example.com", 7, "manager")
	require.NoError(t, err)

	rec, c := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	id, ok := EmployeeIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "dana@example.com", c.Get("email"))
	assert.Equal(t, "manager", c.Get("employee_role"))
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	rec, _ := runAuth(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	guarded := RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("employee_role", "admin")
	require.NoError(t, guarded(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c = echo.New().NewContext(req, rec)
	c.Set("employee_role", "budtender")
	require.NoError(t, guarded(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
