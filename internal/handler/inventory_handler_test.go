package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"
	metrics "inventory-service/prometheus"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInventoryItemQuantityDefaultsToZero(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")

	rec := invoke(t, e, http.MethodPost, "/api/inventory-items", map[string]interface{}{
		"name":      "Towels",
		"unit":      "piece",
		"tenant_id": tenant.ID,
	}, CreateInventoryItem, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var item model.InventoryItem
	decodeBody(t, rec, &item)
	assert.True(t, item.CurrentQuantity.IsZero())
	assert.Nil(t, item.ParLevel)
}

func TestCreateInventoryItemWithQuantityAndCost(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")

	rec := invoke(t, e, http.MethodPost, "/api/inventory-items", map[string]interface{}{
		"name":             "Olive Oil",
		"sku":              "OIL-001",
		"unit":             "liter",
		"current_quantity": "12.5",
		"unit_cost":        "8.99",
		"tenant_id":        tenant.ID,
	}, CreateInventoryItem, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var item model.InventoryItem
	decodeBody(t, rec, &item)
	assert.True(t, item.CurrentQuantity.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, item.UnitCost)
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("8.99")))
}

func TestCreateInventoryItemRejectsForeignCategory(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenantA := seedTenant(t, db, "Hotel A")
	tenantB := seedTenant(t, db, "Hotel B")

	category := model.Category{Name: "Beverages", TenantID: tenantB.ID}
	require.NoError(t, db.Create(&category).Error)

	rec := invoke(t, e, http.MethodPost, "/api/inventory-items", map[string]interface{}{
		"name":        "Coffee",
		"tenant_id":   tenantA.ID,
		"category_id": category.ID,
	}, CreateInventoryItem, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Category not found for this tenant", body["error"])
}

func TestUpdateInventoryItemOverwritesFields(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")

	item := model.InventoryItem{
		Name:            "Towels",
		SKU:             "TWL-1",
		CurrentQuantity: decimal.RequireFromString("50"),
		TenantID:        tenant.ID,
	}
	require.NoError(t, db.Create(&item).Error)

	rec := invoke(t, e, http.MethodPut, "/api/inventory-items/1", map[string]interface{}{
		"name":             "Bath Towels",
		"current_quantity": "47",
		"tenant_id":        tenant.ID,
	}, UpdateInventoryItem, map[string]string{"id": "1"})

	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.InventoryItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "Bath Towels", updated.Name)
	assert.Empty(t, updated.SKU)
	assert.True(t, updated.CurrentQuantity.Equal(decimal.RequireFromString("47")))
}

func TestDeleteInventoryItemRestrictedWhileLedgerReferences(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)

	item := model.InventoryItem{Name: "Flour", TenantID: tenant.ID}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&model.StockTransaction{
		ItemID:         item.ID,
		UserID:         user.ID,
		Type:           model.TransactionTypeIn,
		QuantityChange: decimal.RequireFromString("10"),
		TenantID:       tenant.ID,
	}).Error)

	rec := invoke(t, e, http.MethodDelete, "/api/inventory-items/1", nil, DeleteInventoryItem, map[string]string{"id": "1"})
	require.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	db.Model(&model.InventoryItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestItemCountGaugeFollowsCreateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	gauge := metrics.ItemsPerTenantGauge.WithLabelValues("1")

	rec := invoke(t, e, http.MethodPost, "/api/inventory-items", map[string]interface{}{
		"name":      "Towels",
		"tenant_id": tenant.ID,
	}, CreateInventoryItem, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))

	rec = invoke(t, e, http.MethodDelete, "/api/inventory-items/1", nil, DeleteInventoryItem, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
}

func TestInventoryItemListIsTenantScoped(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenantA := seedTenant(t, db, "Hotel A")
	tenantB := seedTenant(t, db, "Hotel B")

	require.NoError(t, db.Create(&model.InventoryItem{Name: "Towels", TenantID: tenantA.ID}).Error)
	require.NoError(t, db.Create(&model.InventoryItem{Name: "Soap", TenantID: tenantB.ID}).Error)

	rec := invoke(t, e, http.MethodGet, "/api/inventory-items?tenant_id=1", nil, ListInventoryItems, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.InventoryItem
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Towels", items[0].Name)
}
