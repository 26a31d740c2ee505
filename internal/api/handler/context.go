package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/middleware"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// ctxIdentity returns the caller resolved by the guard. Protected routes
// always have one; its absence means the route was wired without the guard.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
