package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type listNotificationsQuery struct {
	PageQuery
	UnreadOnly bool `query:"unread_only"`
}

type updatePreferencesRequest struct {
	PushConnectionRequests *bool   `json:"push_connection_requests"`
	PushMentorshipRequests *bool   `json:"push_mentorship_requests"`
	PushPostInteractions   *bool   `json:"push_post_interactions"`
	PushProjectUpdates     *bool   `json:"push_project_updates"`
	PushClubActivities     *bool   `json:"push_club_activities"`
	DigestFrequency        *string `json:"digest_frequency" validate:"omitempty,oneof=immediate daily weekly never"`
}

func (r updatePreferencesRequest) toPatch() ports.PreferencesPatch {
	p := ports.PreferencesPatch{
		PushConnectionRequests: r.PushConnectionRequests,
		PushMentorshipRequests: r.PushMentorshipRequests,
		PushPostInteractions:   r.PushPostInteractions,
		PushProjectUpdates:     r.PushProjectUpdates,
		PushClubActivities:     r.PushClubActivities,
	}
	if r.DigestFrequency != nil {
		f := domain.DigestFrequency(*r.DigestFrequency)
		p.DigestFrequency = &f
	}
	return p
}

type markAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// Streamer serves a notification stream over an upgraded connection.
type Streamer interface {
	Serve(ctx context.Context, conn *websocket.Conn, userID uint) error
}

type NotificationHandler struct {
	notifications ports.NotificationService
	streamer      Streamer
	upgrader      *websocket.Upgrader
}

func NewNotificationHandler(notifications ports.NotificationService, streamer Streamer, upgrader *websocket.Upgrader) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, streamer: streamer, upgrader: upgrader}
}

// List returns the caller's inbox, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread_only  query     bool  false  "Only unread"
// @Param        limit        query     int   false  "Page size (max 100)"
// @Param        offset       query     int   false  "Offset"
// @Success      200          {object}  listResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var q listNotificationsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	list, total, err := h.notifications.List(c.Request().Context(), actor, ports.ListNotificationsFilter{
		UnreadOnly: q.UnreadOnly,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, list))
}

// Stats counts the caller's inbox.
//
// @Summary      Notification counts
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.NotificationStats
// @Router       /notifications/stats [get]
func (h *NotificationHandler) Stats(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.notifications.Stats(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Get returns one notification with its related object resolved.
//
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  ports.RelatedView
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	view, err := h.notifications.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// MarkRead marks one of the caller's notifications as read.
//
// @Summary      Mark as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkRead(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// MarkAllRead marks every unread notification of the caller as read.
//
// @Summary      Mark all as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  markAllReadResponse
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkAllRead(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markAllReadResponse{Updated: n})
}

// Preferences returns the caller's push preferences.
//
// @Summary      Get notification preferences
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.NotificationPreference
// @Router       /notifications/preferences [get]
func (h *NotificationHandler) Preferences(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	prefs, err := h.notifications.Preferences(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences applies a partial preference update.
//
// @Summary      Update notification preferences
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePreferencesRequest  true  "Fields to change"
// @Success      200   {object}  domain.NotificationPreference
// @Router       /notifications/preferences [put]
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updatePreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	prefs, err := h.notifications.UpdatePreferences(c.Request().Context(), actor, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Stream upgrades to a websocket that receives the caller's notifications
// as they are committed.
//
// @Summary      Notification stream
// @Tags         notifications
// @Param        token  query  string  true  "Access token"
// @Success      101
// @Failure      401    {object}  map[string]string
// @Router       /ws/notifications [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		return nil
	}
	return h.streamer.Serve(c.Request().Context(), conn, actor.UserID)
}
