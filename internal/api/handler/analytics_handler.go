package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/ports"
)

type topPostsQuery struct {
	Days  int `query:"days" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard returns the caller's personal counters.
//
// @Summary      Personal dashboard
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Dashboard
// @Router       /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.analytics.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Summary returns platform-wide totals.
//
// @Summary      Platform summary (admin)
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PlatformSummary
// @Failure      403  {object}  map[string]string
// @Router       /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	s, err := h.analytics.PlatformSummary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// TopPosts ranks recent posts by likes, comments and shares.
//
// @Summary      Top posts
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        days   query    int  false  "Window in days (default 7, max 90)"
// @Param        limit  query    int  false  "Max posts (default 10)"
// @Success      200    {array}  domain.PostEngagement
// @Router       /analytics/top-posts [get]
func (h *AnalyticsHandler) TopPosts(c echo.Context) error {
	var q topPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, err := h.analytics.TopPosts(c.Request().Context(), q.Days, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
