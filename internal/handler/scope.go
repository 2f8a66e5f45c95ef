package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// tenantScope reads the caller-supplied tenant identifier that scopes every
// list operation on tenant-owned entities
func tenantScope(c echo.Context) (uint, error) {
	raw := c.QueryParam("tenant_id")
	if raw == "" {
		return 0, errors.New("tenant_id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid tenant_id")
	}
	return uint(id), nil
}
