package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type ClubHandler struct {
	clubs ports.ClubService
}

func NewClubHandler(clubs ports.ClubService) *ClubHandler {
	return &ClubHandler{clubs: clubs}
}

// List returns active clubs.
//
// @Summary      List clubs
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Name or description match"
// @Param        category  query     string  false  "Category"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Param        offset    query     int     false  "Offset"
// @Success      200       {object}  listResponse
// @Router       /clubs [get]
func (h *ClubHandler) List(c echo.Context) error {
	var q listClubsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	clubs, total, err := h.clubs.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, clubs))
}

// Create founds a club; the caller becomes its admin member.
//
// @Summary      Create a club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClubRequest  true  "Club"
// @Success      201   {object}  domain.Club
// @Failure      400   {object}  map[string]any
// @Router       /clubs [post]
func (h *ClubHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	club, err := h.clubs.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, club)
}

// Get returns one club.
//
// @Summary      Get a club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Club ID"
// @Success      200  {object}  domain.Club
// @Failure      404  {object}  map[string]string
// @Router       /clubs/{id} [get]
func (h *ClubHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	club, err := h.clubs.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Update edits a club. Only the owner or a platform admin may do so.
//
// @Summary      Update a club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Club ID"
// @Param        body  body      updateClubRequest  true  "Fields to change"
// @Success      200   {object}  domain.Club
// @Failure      403   {object}  map[string]string
// @Router       /clubs/{id} [patch]
func (h *ClubHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	club, err := h.clubs.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Join adds the caller to a club. Joining twice is not an error.
//
// @Summary      Join a club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Club ID"
// @Success      200  {object}  domain.JoinResult
// @Failure      404  {object}  map[string]string
// @Router       /clubs/{id}/join [post]
func (h *ClubHandler) Join(c echo.Context) error {
	return h.membership(c, h.clubs.Join)
}

// Leave removes the caller from a club.
//
// @Summary      Leave a club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Club ID"
// @Success      200  {object}  domain.JoinResult
// @Failure      400  {object}  map[string]string
// @Router       /clubs/{id}/leave [post]
func (h *ClubHandler) Leave(c echo.Context) error {
	return h.membership(c, h.clubs.Leave)
}

func (h *ClubHandler) membership(c echo.Context, op func(context.Context, domain.Actor, uint) (*domain.JoinResult, error)) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	res, err := op(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Members lists a club's members.
//
// @Summary      List club members
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Club ID"
// @Success      200  {array}   domain.Membership
// @Router       /clubs/{id}/members [get]
func (h *ClubHandler) Members(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	members, err := h.clubs.Members(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// MyClubs lists the clubs the caller belongs to.
//
// @Summary      Own clubs
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Membership
// @Router       /users/me/clubs [get]
func (h *ClubHandler) MyClubs(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	memberships, err := h.clubs.UserClubs(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memberships)
}

// Delete removes a club with its memberships, posts and events.
//
// @Summary      Delete a club
// @Tags         clubs
// @Security     BearerAuth
// @Param        id   path  int  true  "Club ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clubs/{id} [delete]
func (h *ClubHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.clubs.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Posts lists the club board, pinned posts first.
//
// @Summary      List club posts
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int  true   "Club ID"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  listResponse
// @Failure      403     {object}  map[string]string
// @Router       /clubs/{id}/posts [get]
func (h *ClubHandler) Posts(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var q PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, total, err := h.clubs.ListPosts(c.Request().Context(), actor, id, q.Limit, q.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, posts))
}

// CreatePost writes to the club board. Members only.
//
// @Summary      Create a club post
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Club ID"
// @Param        body  body      clubPostRequest  true  "Post"
// @Success      201   {object}  domain.ClubPostResult
// @Failure      403   {object}  map[string]string
// @Router       /clubs/{id}/posts [post]
func (h *ClubHandler) CreatePost(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req clubPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.clubs.CreatePost(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// Events lists a club's events by start date.
//
// @Summary      List club events
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Club ID"
// @Success      200  {array}   domain.ClubEvent
// @Router       /clubs/{id}/events [get]
func (h *ClubHandler) Events(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	events, err := h.clubs.ListEvents(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent schedules a club event.
//
// @Summary      Create a club event
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Club ID"
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  domain.ClubEvent
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Router       /clubs/{id}/events [post]
func (h *ClubHandler) CreateEvent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ev, err := h.clubs.CreateEvent(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ev)
}

// GetEvent returns one event.
//
// @Summary      Get a club event
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  domain.ClubEvent
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *ClubHandler) GetEvent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ev, err := h.clubs.GetEvent(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// UpdateEvent edits an event. Publishing a draft notifies the members.
//
// @Summary      Update a club event
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  domain.ClubEvent
// @Failure      403   {object}  map[string]string
// @Router       /events/{id} [patch]
func (h *ClubHandler) UpdateEvent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ev, err := h.clubs.UpdateEvent(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// DeleteEvent removes an event.
//
// @Summary      Delete a club event
// @Tags         clubs
// @Security     BearerAuth
// @Param        id   path  int  true  "Event ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /events/{id} [delete]
func (h *ClubHandler) DeleteEvent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.clubs.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
