package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/api/middleware"
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// actorFrom builds the caller identity from the claims the Auth middleware
// stored. A missing user id means the route was not behind Auth.
func actorFrom(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get(middleware.ContextUserID).(uint)
	if userID == 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(middleware.ContextUsername).(string)
	userType, _ := c.Get(middleware.ContextUserType).(domain.UserType)
	return domain.Actor{UserID: userID, Username: username, UserType: userType}, nil
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewFieldError(name, name+" must be a positive integer")
	}
	return uint(id), nil
}

func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// bindAndValidate decodes the request into req and runs struct validation.
// Amounts that fail to parse surface as domain.ErrInvalidMoney.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		if errors.Is(err, domain.ErrInvalidMoney) {
			return domain.NewError(domain.ErrInvalidMoney, moneyMessage(err))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func moneyMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal.Error()
	}
	return err.Error()
}

// PageQuery is embedded by list requests. It is exported so echo can bind
// through the embedding.
type PageQuery struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

// listResponse wraps one page of results.
type listResponse struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

func page(total int64, results any) listResponse {
	return listResponse{Count: total, Results: results}
}
