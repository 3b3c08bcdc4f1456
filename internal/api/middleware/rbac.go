package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// RBAC enforces role-based access control. Roles are matched as an explicit
// allow-set; there is no implied hierarchy.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get(CtxRole).(string)
			role, err := domain.ParseRole(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
