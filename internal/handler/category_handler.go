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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	TenantID uint   `json:"tenant_id" validate:"required"`
}

// CreateCategory creates a new category under a tenant
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Category validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// A category must belong to an existing tenant
	var tenantCount int64
	database.GetDB().Model(&model.Tenant{}).Where("id = ?", req.TenantID).Count(&tenantCount)
	if tenantCount == 0 {
		log.Warn("Unknown tenant for category", zap.Uint("tenant_id", req.TenantID))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tenant does not exist"})
	}

	category := model.Category{
		Name:     req.Name,
		TenantID: req.TenantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&category); result.Error != nil {
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Uint("tenant_id", req.TenantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create category"})
	}

	log.Info("Category created",
		zap.Uint("id", category.ID),
		zap.String("name", category.Name),
		zap.Uint("tenant_id", category.TenantID))
	return c.JSON(http.StatusCreated, category)
}

// GetCategory retrieves a category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var category model.Category
	if result := database.GetDB().First(&category, id); result.Error != nil {
		log.Warn("Category not found", zap.Uint64("category_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

// ListCategories retrieves all categories for the caller-supplied tenant.
// There is no cross-tenant listing.
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "list")

	tenantID, err := tenantScope(c)
	if err != nil {
		log.Warn("Missing tenant scope for category listing", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	categories := []model.Category{}
	if result := database.GetDB().Where("tenant_id = ?", tenantID).Order("id").Find(&categories); result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Uint("tenant_id", tenantID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory overwrites a category's mutable fields. Tenant ownership
// never changes on update.
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("category_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Category validation failed", zap.Uint64("category_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var category model.Category
	if result := database.GetDB().First(&category, id); result.Error != nil {
		log.Warn("Category not found for update", zap.Uint64("category_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	category.Name = req.Name
	// TenantID remains unchanged - ownership can't move between tenants

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&category); result.Error != nil {
		log.Error("Failed to update category", zap.Uint64("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update category"})
	}

	log.Info("Category updated", zap.Uint("id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory permanently removes a category. Deletion is restricted while
// inventory items still reference it.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	var category model.Category
	if result := database.GetDB().First(&category, id); result.Error != nil {
		log.Warn("Category not found for delete", zap.Uint64("category_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	var refs int64
	database.GetDB().Model(&model.InventoryItem{}).Where("category_id = ?", id).Count(&refs)
	if refs > 0 {
		log.Warn("Category still referenced by inventory items",
			zap.Uint64("category_id", id),
			zap.Int64("references", refs))
		prometheus.RecordError("conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": "Category is referenced by inventory items"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&category); result.Error != nil {
		log.Error("Failed to delete category", zap.Uint64("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete category"})
	}

	log.Info("Category deleted", zap.Uint64("category_id", id), zap.Uint("tenant_id", category.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
