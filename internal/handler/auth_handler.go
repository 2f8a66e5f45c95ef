package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GoogleLogin exchanges an external Google identity token for an application
// token. Placeholder until the Google token verifier is configured: it returns
// a fixed mock response without inspecting the ID token.
func GoogleLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.GoogleLoginCounter.Inc()

	var req struct {
		IDToken string `json:"idToken"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse google login request", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// TODO: verify the ID token with Google's IdTokenVerifier, find-or-create
	// the user, and mint a real application token
	log.Info("Google login requested (mock flow)")
	return c.JSON(http.StatusOK, echo.Map{
		"token": "mock-jwt-token",
		"name":  "Mock User",
		"email": "mock@example.com",
		"role":  model.RoleOrgOwner,
	})
}

// PinLogin authenticates an employee by their 5-digit PIN and mints an
// application token carrying the user's tenant context
func PinLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PinLoginCounter.Inc()

	var req struct {
		PIN string `json:"pin" validate:"required,len=5,number"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse PIN login request", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		log.Warn("Malformed PIN", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "PIN must be exactly 5 digits"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("pin = ?", req.PIN).First(&user); result.Error != nil {
		log.Warn("PIN login failed: no matching user")
		prometheus.RecordError("unauthorized")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if user.Status != model.UserStatusActive {
		log.Warn("PIN login rejected for inactive user", zap.Uint("user_id", user.ID))
		prometheus.RecordError("unauthorized")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Resolve tenant name for the token when the user is tenant-scoped
	var tenantName string
	if user.TenantID != nil {
		var tenant model.Tenant
		if result := database.GetDB().Select("name").First(&tenant, *user.TenantID); result.Error == nil {
			tenantName = tenant.Name
		}
	}

	token, err := jwtutil.GenerateTokenWithTenant(user.Email, user.ID, user.Role, user.TenantID, tenantName)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in with PIN",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}
