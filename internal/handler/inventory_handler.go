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

// InventoryItemRequest defines the structure for item creation/update requests
type InventoryItemRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	SKU             string           `json:"sku" validate:"omitempty,max=100"`
	Unit            string           `json:"unit" validate:"omitempty,max=30"`
	CurrentQuantity *decimal.Decimal `json:"current_quantity"`
	ParLevel        *decimal.Decimal `json:"par_level"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	CategoryID      *uint            `json:"category_id"`
	SupplierID      *uint            `json:"supplier_id"`
	TenantID        uint             `json:"tenant_id" validate:"required"`
	ImageURL        string           `json:"image_url" validate:"omitempty,max=500"`
}

// validateItemReferences checks that the optional category/supplier links
// exist and belong to the item's tenant
func validateItemReferences(req *InventoryItemRequest) string {
	if req.CategoryID != nil {
		var count int64
		database.GetDB().Model(&model.Category{}).
			Where("id = ? AND tenant_id = ?", *req.CategoryID, req.TenantID).
			Count(&count)
		if count == 0 {
			return "Category not found for this tenant"
		}
	}
	if req.SupplierID != nil {
		var count int64
		database.GetDB().Model(&model.Supplier{}).
			Where("id = ? AND tenant_id = ?", *req.SupplierID, req.TenantID).
			Count(&count)
		if count == 0 {
			return "Supplier not found for this tenant"
		}
	}
	return ""
}

// CreateInventoryItem creates a new inventory item. CurrentQuantity defaults
// to zero when omitted.
func CreateInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordItemOperation("create")

	var req InventoryItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Item validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var tenantCount int64
	database.GetDB().Model(&model.Tenant{}).Where("id = ?", req.TenantID).Count(&tenantCount)
	if tenantCount == 0 {
		log.Warn("Unknown tenant for inventory item", zap.Uint("tenant_id", req.TenantID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tenant does not exist"})
	}

	if msg := validateItemReferences(&req); msg != "" {
		log.Warn("Invalid item references", zap.String("reason", msg), zap.Uint("tenant_id", req.TenantID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	item := model.InventoryItem{
		Name:            req.Name,
		SKU:             req.SKU,
		Unit:            req.Unit,
		CurrentQuantity: decimal.Zero,
		ParLevel:        req.ParLevel,
		UnitCost:        req.UnitCost,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		TenantID:        req.TenantID,
		ImageURL:        req.ImageURL,
	}
	if req.CurrentQuantity != nil {
		item.CurrentQuantity = *req.CurrentQuantity
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&item); result.Error != nil {
		log.Error("Failed to create inventory item",
			zap.String("name", req.Name),
			zap.Uint("tenant_id", req.TenantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create inventory item"})
	}

	updateItemCount(item.TenantID)

	log.Info("Inventory item created",
		zap.Uint("id", item.ID),
		zap.String("name", item.Name),
		zap.Uint("tenant_id", item.TenantID))
	return c.JSON(http.StatusCreated, item)
}

// GetInventoryItem retrieves an inventory item by ID
func GetInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordItemOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid item ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var item model.InventoryItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		log.Warn("Inventory item not found", zap.Uint64("item_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
	}

	return c.JSON(http.StatusOK, item)
}

// ListInventoryItems retrieves all items for the caller-supplied tenant
func ListInventoryItems(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordItemOperation("list")

	tenantID, err := tenantScope(c)
	if err != nil {
		log.Warn("Missing tenant scope for item listing", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	items := []model.InventoryItem{}
	if result := database.GetDB().Where("tenant_id = ?", tenantID).Order("id").Find(&items); result.Error != nil {
		log.Error("Failed to retrieve inventory items", zap.Uint("tenant_id", tenantID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve inventory items"})
	}

	return c.JSON(http.StatusOK, items)
}

// UpdateInventoryItem overwrites all mutable fields of an item, including its
// stored CurrentQuantity. Nothing here recomputes the quantity from the
// transaction ledger; keeping the two consistent is the caller's job.
func UpdateInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordItemOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid item ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	var req InventoryItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("item_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Item validation failed", zap.Uint64("item_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var item model.InventoryItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		log.Warn("Inventory item not found for update", zap.Uint64("item_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
	}

	// References are validated against the item's own tenant
	req.TenantID = item.TenantID
	if msg := validateItemReferences(&req); msg != "" {
		log.Warn("Invalid item references", zap.Uint64("item_id", id), zap.String("reason", msg))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	item.Name = req.Name
	item.SKU = req.SKU
	item.Unit = req.Unit
	item.ParLevel = req.ParLevel
	item.UnitCost = req.UnitCost
	item.CategoryID = req.CategoryID
	item.SupplierID = req.SupplierID
	item.ImageURL = req.ImageURL
	if req.CurrentQuantity != nil {
		item.CurrentQuantity = *req.CurrentQuantity
	} else {
		item.CurrentQuantity = decimal.Zero
	}
	// TenantID remains unchanged - ownership can't move between tenants

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&item); result.Error != nil {
		log.Error("Failed to update inventory item", zap.Uint64("item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update inventory item"})
	}

	log.Info("Inventory item updated", zap.Uint("id", item.ID), zap.String("name", item.Name))
	return c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem permanently removes an item. Deletion is restricted
// while stock transactions still reference it, keeping the ledger intact.
func DeleteInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordItemOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid item ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	var item model.InventoryItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		log.Warn("Inventory item not found for delete", zap.Uint64("item_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
	}

	var refs int64
	database.GetDB().Model(&model.StockTransaction{}).Where("item_id = ?", id).Count(&refs)
	if refs > 0 {
		log.Warn("Inventory item still referenced by stock transactions",
			zap.Uint64("item_id", id),
			zap.Int64("references", refs))
		prometheus.RecordError("conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": "Inventory item is referenced by stock transactions"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&item); result.Error != nil {
		log.Error("Failed to delete inventory item", zap.Uint64("item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete inventory item"})
	}

	updateItemCount(item.TenantID)

	log.Info("Inventory item deleted", zap.Uint64("item_id", id), zap.Uint("tenant_id", item.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Inventory item deleted successfully"})
}

// Helper function to update the items-per-tenant gauge
func updateItemCount(tenantID uint) {
	var count int64
	database.GetDB().Model(&model.InventoryItem{}).
		Where("tenant_id = ?", tenantID).
		Count(&count)
	prometheus.UpdateItemsPerTenant(tenantID, int(count))
}
