package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// StatusLookup returns the current moderation status of a user.
type StatusLookup func(ctx context.Context, userID uint) (domain.UserStatus, error)

// ActiveAccount rejects writes from suspended accounts whose tokens have not
// expired yet. Reads pass without a lookup. It must run after Auth; a nil
// lookup disables the check.
func ActiveAccount(lookup StatusLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if lookup == nil {
			return next
		}
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			userID, _ := c.Get(ContextUserID).(uint)
			status, err := lookup(c.Request().Context(), userID)
			if errors.Is(err, domain.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return err
			}
			if status == domain.UserStatusSuspended {
				return echo.NewHTTPError(http.StatusForbidden, "account suspended")
			}
			return next(c)
		}
	}
}
