package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tenants", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := AuthMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	rec, _ := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	rec, _ := runAuth(t, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	rec, _ := runAuth(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewarePassesValidTokenAndSetsContext(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "secret", ExpirationHours: 1})

	tenantID := uint(3)
	token, err := jwtutil.GenerateTokenWithTenant("staff@example.com", 9, "ORG_EMPLOYEE", &tenantID, "Grand Hotel")
	require.NoError(t, err)

	rec, c := runAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(9), c.Get("user_id"))
	assert.Equal(t, "staff@example.com", c.Get("email"))
	assert.Equal(t, tenantID, c.Get("tenant_id"))
	assert.Equal(t, "Grand Hotel", c.Get("tenant_name"))
}
