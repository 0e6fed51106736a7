package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the given marketplace roles. The role comes from
// the claims Auth injected; a missing or unrecognized role is rejected the
// same way as a wrong one. Rejections are returned as echo.HTTPError so the
// central error handler renders them, matching Auth.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; ok {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "role not allowed for this operation")
		}
	}
}
