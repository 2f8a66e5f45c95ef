package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedItem(t *testing.T, db *gorm.DB, tenantID uint, name string, qty string) model.InventoryItem {
	t.Helper()
	item := model.InventoryItem{
		Name:            name,
		CurrentQuantity: decimal.RequireFromString(qty),
		TenantID:        tenantID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestCreateStockTransactionAssignsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)
	item := seedItem(t, db, tenant.ID, "Flour", "100")

	rec := invoke(t, e, http.MethodPost, "/api/stock-transactions", map[string]interface{}{
		"item_id":         item.ID,
		"user_id":         user.ID,
		"type":            model.TransactionTypeIn,
		"quantity_change": "25",
		"tenant_id":       tenant.ID,
	}, CreateStockTransaction, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var tx model.StockTransaction
	decodeBody(t, rec, &tx)
	assert.NotZero(t, tx.ID)
	assert.False(t, tx.Timestamp.IsZero())
	assert.True(t, tx.QuantityChange.Equal(decimal.RequireFromString("25")))
}

func TestCreateStockTransactionDoesNotTouchItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)
	item := seedItem(t, db, tenant.ID, "Flour", "100")

	rec := invoke(t, e, http.MethodPost, "/api/stock-transactions", map[string]interface{}{
		"item_id":         item.ID,
		"user_id":         user.ID,
		"type":            model.TransactionTypeOutUse,
		"quantity_change": "-10",
		"tenant_id":       tenant.ID,
	}, CreateStockTransaction, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var after model.InventoryItem
	require.NoError(t, db.First(&after, item.ID).Error)
	assert.True(t, after.CurrentQuantity.Equal(decimal.RequireFromString("100")))
}

func TestCreateStockTransactionRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)
	item := seedItem(t, db, tenant.ID, "Flour", "100")

	rec := invoke(t, e, http.MethodPost, "/api/stock-transactions", map[string]interface{}{
		"item_id":         item.ID,
		"user_id":         user.ID,
		"type":            "TRANSFER",
		"quantity_change": "5",
		"tenant_id":       tenant.ID,
	}, CreateStockTransaction, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid transaction type", body["error"])

	var count int64
	db.Model(&model.StockTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateStockTransactionRejectsTenantMismatch(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenantA := seedTenant(t, db, "Hotel A")
	tenantB := seedTenant(t, db, "Hotel B")
	user := seedUser(t, db, "chef@example.com", "12345", &tenantA.ID)
	item := seedItem(t, db, tenantA.ID, "Flour", "100")

	rec := invoke(t, e, http.MethodPost, "/api/stock-transactions", map[string]interface{}{
		"item_id":         item.ID,
		"user_id":         user.ID,
		"type":            model.TransactionTypeIn,
		"quantity_change": "5",
		"tenant_id":       tenantB.ID,
	}, CreateStockTransaction, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Item does not belong to this tenant", body["error"])
}

func TestListStockTransactionsInCreationOrder(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)
	item := seedItem(t, db, tenant.ID, "Flour", "100")

	for _, change := range []string{"10", "-3", "-2"} {
		rec := invoke(t, e, http.MethodPost, "/api/stock-transactions", map[string]interface{}{
			"item_id":         item.ID,
			"user_id":         user.ID,
			"type":            model.TransactionTypeIn,
			"quantity_change": change,
			"tenant_id":       tenant.ID,
		}, CreateStockTransaction, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := invoke(t, e, http.MethodGet, "/api/stock-transactions?tenant_id=1", nil, ListStockTransactions, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var transactions []model.StockTransaction
	decodeBody(t, rec, &transactions)
	require.Len(t, transactions, 3)
	assert.True(t, transactions[0].QuantityChange.Equal(decimal.RequireFromString("10")))
	assert.True(t, transactions[2].QuantityChange.Equal(decimal.RequireFromString("-2")))
}

func TestListStockTransactionsFiltersByItem(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel A")
	user := seedUser(t, db, "chef@example.com", "12345", &tenant.ID)
	flour := seedItem(t, db, tenant.ID, "Flour", "100")
	sugar := seedItem(t, db, tenant.ID, "Sugar", "50")

	for _, itemID := range []uint{flour.ID, sugar.ID, flour.ID} {
		require.NoError(t, db.Create(&model.StockTransaction{
			ItemID:         itemID,
			UserID:         user.ID,
			Type:           model.TransactionTypeIn,
			QuantityChange: decimal.RequireFromString("1"),
			TenantID:       tenant.ID,
		}).Error)
	}

	rec := invoke(t, e, http.MethodGet, "/api/stock-transactions?tenant_id=1&item_id=1", nil, ListStockTransactions, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var transactions []model.StockTransaction
	decodeBody(t, rec, &transactions)
	require.Len(t, transactions, 2)
	for _, tx := range transactions {
		assert.Equal(t, flour.ID, tx.ItemID)
	}
}
