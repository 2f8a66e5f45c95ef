package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB swaps the global database for an in-memory one with the full
// schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.InventoryItem{},
		&model.StockTransaction{},
	))

	database.DB = db
	return db
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// invoke runs a handler against a synthetic JSON request and returns the
// recorder. pathParams maps route parameter names to values.
func invoke(t *testing.T, e *echo.Echo, method, target string, body interface{}, h echo.HandlerFunc, pathParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(pathParams))
	values := make([]string, 0, len(pathParams))
	for k, v := range pathParams {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func seedTenant(t *testing.T, db *gorm.DB, name string) model.Tenant {
	t.Helper()
	tenant := model.Tenant{Name: name, Status: model.TenantStatusActive}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func seedUser(t *testing.T, db *gorm.DB, email, pin string, tenantID *uint) model.User {
	t.Helper()
	user := model.User{
		Name:     "Test User",
		Email:    email,
		Role:     model.RoleOrgEmployee,
		PIN:      pin,
		Status:   model.UserStatusActive,
		TenantID: tenantID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
