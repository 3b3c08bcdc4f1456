package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/api/middleware"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// principal is the caller identity injected by the Auth middleware.
type principal struct {
	Email string
	Role  domain.Role
}

// ctxPrincipal extracts the caller identity. A missing or unknown role means
// the middleware did not run or the token predates a role change; both are 401.
func ctxPrincipal(c echo.Context) (principal, error) {
	email, _ := c.Get(middleware.CtxEmail).(string)
	raw, _ := c.Get(middleware.CtxRole).(string)

	role, err := domain.ParseRole(raw)
	if email == "" || err != nil {
		return principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal{Email: email, Role: role}, nil
}
