package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the caller's own profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetProfile(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// UpdateMe applies a partial profile update.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]any
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.Request().Context(), actor, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// List searches the member directory.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search           query     string  false  "Partial match on username, names or company"
// @Param        status           query     string  false  "Account status (default active)"
// @Param        user_type        query     string  false  "User type"
// @Param        department       query     string  false  "Department"
// @Param        graduation_year  query     int     false  "Graduation year"
// @Param        limit            query     int     false  "Page size (max 100)"
// @Param        offset           query     int     false  "Offset"
// @Success      200              {object}  listResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	users, total, err := h.users.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	profiles := make([]profileResponse, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, toProfile(u))
	}
	return c.JSON(http.StatusOK, page(total, profiles))
}

// Get returns a member's public profile.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// Stats returns a member's activity counters.
//
// @Summary      User statistics
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.UserStats
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.users.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// SetStatus changes an account's moderation status.
//
// @Summary      Set user status (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "User ID"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  profileResponse
// @Failure      403   {object}  map[string]string
// @Router       /users/{id}/status [patch]
func (h *UserHandler) SetStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.SetStatus(c.Request().Context(), actor, id, domain.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// Verify marks an account as verified.
//
// @Summary      Verify user (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  profileResponse
// @Failure      403  {object}  map[string]string
// @Router       /users/{id}/verify [post]
func (h *UserHandler) Verify(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Verify(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// MyActivity lists the caller's recent activity log.
//
// @Summary      Own activity log
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {array}   domain.Activity
// @Router       /users/me/activity [get]
func (h *UserHandler) MyActivity(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var q activityQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	entries, err := h.users.ListActivity(c.Request().Context(), actor, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListInterests returns the interest catalogue.
//
// @Summary      List interests
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Interest
// @Router       /interests [get]
func (h *UserHandler) ListInterests(c echo.Context) error {
	interests, err := h.users.ListInterests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interests)
}

// SetMyInterests replaces the caller's interests.
//
// @Summary      Set own interests
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setInterestsRequest  true  "Interests with proficiency 1-5"
// @Success      200   {array}   domain.UserInterest
// @Failure      400   {object}  map[string]any
// @Router       /users/me/interests [put]
func (h *UserHandler) SetMyInterests(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req setInterestsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.users.SetInterests(c.Request().Context(), actor, req.toInputs())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
