package handler

import (
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockTransactionRequest defines the structure for recording a stock movement
type StockTransactionRequest struct {
	ItemID            uint             `json:"item_id" validate:"required"`
	UserID            uint             `json:"user_id" validate:"required"`
	Type              string           `json:"type" validate:"required"`
	QuantityChange    decimal.Decimal  `json:"quantity_change"`
	CostAtTransaction *decimal.Decimal `json:"cost_at_transaction"`
	TenantID          uint             `json:"tenant_id" validate:"required"`
}

// CreateStockTransaction appends a movement to the ledger. The server assigns
// the timestamp, and the referenced item's stored quantity is never touched
// here.
func CreateStockTransaction(c echo.Context) error {
	log := logger.FromContext(c)

	var req StockTransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Stock transaction validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if !model.ValidTransactionType(req.Type) {
		log.Warn("Unknown transaction type", zap.String("type", req.Type))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction type"})
	}

	var item model.InventoryItem
	if result := database.GetDB().First(&item, req.ItemID); result.Error != nil {
		log.Warn("Unknown item for stock transaction", zap.Uint("item_id", req.ItemID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Inventory item does not exist"})
	}

	if item.TenantID != req.TenantID {
		log.Warn("Item belongs to a different tenant",
			zap.Uint("item_id", req.ItemID),
			zap.Uint("item_tenant_id", item.TenantID),
			zap.Uint("tenant_id", req.TenantID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Item does not belong to this tenant"})
	}

	var userCount int64
	database.GetDB().Model(&model.User{}).Where("id = ?", req.UserID).Count(&userCount)
	if userCount == 0 {
		log.Warn("Unknown user for stock transaction", zap.Uint("user_id", req.UserID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User does not exist"})
	}

	tx := model.StockTransaction{
		ItemID:            req.ItemID,
		UserID:            req.UserID,
		Type:              req.Type,
		QuantityChange:    req.QuantityChange,
		CostAtTransaction: req.CostAtTransaction,
		TenantID:          req.TenantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&tx); result.Error != nil {
		log.Error("Failed to record stock transaction",
			zap.Uint("item_id", req.ItemID),
			zap.String("type", req.Type),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record stock transaction"})
	}

	prometheus.RecordStockTransaction(tx.Type)
	log.Info("Stock transaction recorded",
		zap.Uint("id", tx.ID),
		zap.Uint("item_id", tx.ItemID),
		zap.String("type", tx.Type),
		zap.String("quantity_change", tx.QuantityChange.String()))
	return c.JSON(http.StatusCreated, tx)
}

// GetStockTransaction retrieves a single ledger entry by ID
func GetStockTransaction(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid transaction ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tx model.StockTransaction
	if result := database.GetDB().First(&tx, id); result.Error != nil {
		log.Warn("Stock transaction not found", zap.Uint64("transaction_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock transaction not found"})
	}

	return c.JSON(http.StatusOK, tx)
}

// ListStockTransactions retrieves the ledger for a tenant in creation order,
// optionally filtered to a single item. The ledger has no update or delete.
func ListStockTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, err := tenantScope(c)
	if err != nil {
		log.Warn("Missing tenant scope for transaction listing", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	query := database.GetDB().Where("tenant_id = ?", tenantID)
	if raw := c.QueryParam("item_id"); raw != "" {
		itemID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid item_id filter", zap.String("item_id", raw))
			prometheus.RecordError("validation")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item_id"})
		}
		query = query.Where("item_id = ?", uint(itemID))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	transactions := []model.StockTransaction{}
	if result := query.Order("timestamp asc, id asc").Find(&transactions); result.Error != nil {
		log.Error("Failed to retrieve stock transactions", zap.Uint("tenant_id", tenantID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve stock transactions"})
	}

	return c.JSON(http.StatusOK, transactions)
}
