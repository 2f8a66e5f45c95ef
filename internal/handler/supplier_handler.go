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
	"go.uber.org/zap"
)

// SupplierRequest defines the structure for supplier creation/update requests
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	ContactInfo string `json:"contact_info"`
	TenantID    uint   `json:"tenant_id" validate:"required"`
}

// CreateSupplier creates a new supplier under a tenant
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("supplier", "create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Supplier validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var tenantCount int64
	database.GetDB().Model(&model.Tenant{}).Where("id = ?", req.TenantID).Count(&tenantCount)
	if tenantCount == 0 {
		log.Warn("Unknown tenant for supplier", zap.Uint("tenant_id", req.TenantID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tenant does not exist"})
	}

	supplier := model.Supplier{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		TenantID:    req.TenantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&supplier); result.Error != nil {
		log.Error("Failed to create supplier",
			zap.String("name", req.Name),
			zap.Uint("tenant_id", req.TenantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create supplier"})
	}

	log.Info("Supplier created",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name),
		zap.Uint("tenant_id", supplier.TenantID))
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier retrieves a supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("supplier", "get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid supplier ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var supplier model.Supplier
	if result := database.GetDB().First(&supplier, id); result.Error != nil {
		log.Warn("Supplier not found", zap.Uint64("supplier_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
	}

	return c.JSON(http.StatusOK, supplier)
}

// ListSuppliers retrieves all suppliers for the caller-supplied tenant
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("supplier", "list")

	tenantID, err := tenantScope(c)
	if err != nil {
		log.Warn("Missing tenant scope for supplier listing", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	suppliers := []model.Supplier{}
	if result := database.GetDB().Where("tenant_id = ?", tenantID).Order("id").Find(&suppliers); result.Error != nil {
		log.Error("Failed to retrieve suppliers", zap.Uint("tenant_id", tenantID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve suppliers"})
	}

	return c.JSON(http.StatusOK, suppliers)
}

// UpdateSupplier overwrites a supplier's mutable fields
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("supplier", "update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid supplier ID"})
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("supplier_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Supplier validation failed", zap.Uint64("supplier_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var supplier model.Supplier
	if result := database.GetDB().First(&supplier, id); result.Error != nil {
		log.Warn("Supplier not found for update", zap.Uint64("supplier_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
	}

	supplier.Name = req.Name
	supplier.ContactInfo = req.ContactInfo
	// TenantID remains unchanged - ownership can't move between tenants

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&supplier); result.Error != nil {
		log.Error("Failed to update supplier", zap.Uint64("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update supplier"})
	}

	log.Info("Supplier updated", zap.Uint("id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier permanently removes a supplier. Deletion is restricted while
// inventory items still reference it.
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("supplier", "delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid supplier ID"})
	}

	var supplier model.Supplier
	if result := database.GetDB().First(&supplier, id); result.Error != nil {
		log.Warn("Supplier not found for delete", zap.Uint64("supplier_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
	}

	var refs int64
	database.GetDB().Model(&model.InventoryItem{}).Where("supplier_id = ?", id).Count(&refs)
	if refs > 0 {
		log.Warn("Supplier still referenced by inventory items",
			zap.Uint64("supplier_id", id),
			zap.Int64("references", refs))
		prometheus.RecordError("conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": "Supplier is referenced by inventory items"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&supplier); result.Error != nil {
		log.Error("Failed to delete supplier", zap.Uint64("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete supplier"})
	}

	log.Info("Supplier deleted", zap.Uint64("supplier_id", id), zap.Uint("tenant_id", supplier.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Supplier deleted successfully"})
}
