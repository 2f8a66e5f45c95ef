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

// TenantRequest defines the structure for tenant creation requests
type TenantRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Status   string `json:"status" validate:"omitempty,oneof=ACTIVE SUSPENDED"`
	PlanType string `json:"plan_type"`
}

// CreateTenant registers a new tenant; status defaults to ACTIVE
func CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("create")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant creation request", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Tenant validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tenant := model.Tenant{
		Name:     req.Name,
		Status:   req.Status,
		PlanType: req.PlanType,
	}
	if tenant.Status == "" {
		tenant.Status = model.TenantStatusActive
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&tenant); result.Error != nil {
		log.Error("Failed to create tenant", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create tenant"})
	}

	log.Info("Tenant created",
		zap.Uint("id", tenant.ID),
		zap.String("name", tenant.Name),
		zap.String("status", tenant.Status))
	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant retrieves a tenant by ID
func GetTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid tenant ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid tenant ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, id); result.Error != nil {
		log.Warn("Tenant not found", zap.Uint64("tenant_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tenant not found"})
	}

	return c.JSON(http.StatusOK, tenant)
}

// ListTenants retrieves all tenants
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	tenants := []model.Tenant{}
	if result := database.GetDB().Order("id").Find(&tenants); result.Error != nil {
		log.Error("Failed to retrieve tenants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve tenants"})
	}

	return c.JSON(http.StatusOK, tenants)
}
