package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// RBAC lets the request through only for the given user types. It must run
// after Auth.
func RBAC(allowedTypes ...domain.UserType) echo.MiddlewareFunc {
	allowed := make(map[domain.UserType]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userType, _ := c.Get(ContextUserType).(domain.UserType)
			if _, ok := allowed[userType]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

// AdminOnly is RBAC restricted to administrators.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.UserTypeAdmin)
}
