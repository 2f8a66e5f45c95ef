package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserRequest defines the structure for user creation/update requests
type UserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=ORG_OWNER ORG_EMPLOYEE PLATFORM_ADMIN"`
	PIN      string `json:"pin" validate:"omitempty,len=5,number"`
	Status   string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	TenantID *uint  `json:"tenant_id"`
}

// normalizeEmail lower-cases emails before compare and store, which makes
// email uniqueness case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListUsers retrieves all users. The user directory is global: no tenant
// filter is applied at this layer.
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	users := []model.User{}
	if result := database.GetDB().Order("id").Find(&users); result.Error != nil {
		log.Error("Failed to retrieve users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser retrieves a user by ID
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Warn("User not found", zap.Uint64("user_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user. Email must be globally unique; role defaults
// to ORG_EMPLOYEE and status to ACTIVE.
func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("create")

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("User validation failed", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	email := normalizeEmail(req.Email)

	// Check-then-write; the unique index on email remains the authoritative
	// guard against the race between check and insert
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Warn("Email already exists", zap.String("email", email))
		prometheus.RecordError("conflict")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already exists"})
	}

	user := model.User{
		Name:     req.Name,
		Email:    email,
		Role:     req.Role,
		PIN:      req.PIN,
		Status:   req.Status,
		TenantID: req.TenantID,
	}
	if user.Role == "" {
		user.Role = model.RoleOrgEmployee
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.String("email", email), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create user"})
	}

	log.Info("User created",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser overwrites all mutable fields of an existing user. There are no
// partial patch semantics.
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("user_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("User validation failed", zap.Uint64("user_id", id), zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Warn("User not found for update", zap.Uint64("user_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	email := normalizeEmail(req.Email)

	// Reject an email change that collides with a different existing user
	if email != user.Email {
		var count int64
		database.GetDB().Model(&model.User{}).
			Where("email = ? AND id != ?", email, id).
			Count(&count)
		if count > 0 {
			log.Warn("Email already exists", zap.String("email", email))
			prometheus.RecordError("conflict")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already exists"})
		}
	}

	user.Name = req.Name
	user.Email = email
	user.Role = req.Role
	user.PIN = req.PIN
	user.Status = req.Status
	user.TenantID = req.TenantID
	if user.Role == "" {
		user.Role = model.RoleOrgEmployee
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.Uint64("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	log.Info("User updated", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser permanently removes a user
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Warn("User not found for delete", zap.Uint64("user_id", id))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Uint64("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	log.Info("User deleted", zap.Uint64("user_id", id))
	return c.NoContent(http.StatusNoContent)
}
