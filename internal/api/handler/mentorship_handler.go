package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type MentorshipHandler struct {
	mentorship ports.MentorshipService
}

func NewMentorshipHandler(mentorship ports.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{mentorship: mentorship}
}

// UpsertProfile creates or replaces the caller's mentor profile.
//
// @Summary      Upsert own mentor profile
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mentorProfileRequest  true  "Mentor profile"
// @Success      200   {object}  domain.MentorProfile
// @Failure      400   {object}  map[string]any
// @Router       /mentors/me [put]
func (h *MentorshipHandler) UpsertProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req mentorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	profile, err := h.mentorship.UpsertProfile(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListMentors returns active mentor profiles.
//
// @Summary      List mentors
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        expertise     query     string  false  "Expertise area"
// @Param        availability  query     string  false  "Availability"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Param        offset        query     int     false  "Offset"
// @Success      200           {object}  listResponse
// @Router       /mentors [get]
func (h *MentorshipHandler) ListMentors(c echo.Context) error {
	var q listMentorsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	profiles, total, err := h.mentorship.ListMentors(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, profiles))
}

// GetProfile returns a user's mentor profile.
//
// @Summary      Get a mentor profile
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true  "User ID"
// @Success      200      {object}  domain.MentorProfile
// @Failure      404      {object}  map[string]string
// @Router       /mentors/{user_id} [get]
func (h *MentorshipHandler) GetProfile(c echo.Context) error {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	profile, err := h.mentorship.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Request asks a mentor for mentorship.
//
// @Summary      Request mentorship
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mentorshipRequestBody  true  "Request"
// @Success      201   {object}  domain.MentorshipRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /mentorships [post]
func (h *MentorshipHandler) Request(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req mentorshipRequestBody
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.mentorship.Request(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// ListRequests lists the caller's mentorships, as mentee unless role=mentor.
//
// @Summary      List mentorships
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        role  query    string  false  "mentor or mentee (default)"
// @Success      200   {array}  domain.MentorshipRequest
// @Router       /mentorships [get]
func (h *MentorshipHandler) ListRequests(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var q listMentorshipsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	list, err := h.mentorship.ListRequests(c.Request().Context(), actor, q.Role == "mentor")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Respond accepts or rejects a pending request addressed to the caller.
//
// @Summary      Respond to a mentorship request
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Mentorship ID"
// @Param        body  body      mentorshipRespondRequest  true  "Decision"
// @Success      200   {object}  domain.MentorshipRequest
// @Failure      404   {object}  map[string]string
// @Router       /mentorships/{id}/respond [post]
func (h *MentorshipHandler) Respond(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req mentorshipRespondRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.mentorship.Respond(c.Request().Context(), actor, id, domain.ConnectionAction(req.Action), req.Response)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Complete closes an accepted mentorship.
//
// @Summary      Complete a mentorship
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mentorship ID"
// @Success      200  {object}  domain.MentorshipRequest
// @Failure      400  {object}  map[string]string
// @Router       /mentorships/{id}/complete [post]
func (h *MentorshipHandler) Complete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	r, err := h.mentorship.Complete(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// ScheduleSession books a session on an accepted mentorship.
//
// @Summary      Schedule a session
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Mentorship ID"
// @Param        body  body      scheduleSessionRequest  true  "Session"
// @Success      201   {object}  domain.MentorshipSession
// @Failure      400   {object}  map[string]any
// @Router       /mentorships/{id}/sessions [post]
func (h *MentorshipHandler) ScheduleSession(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req scheduleSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.mentorship.ScheduleSession(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// ListSessions lists the sessions of a mentorship the caller takes part in.
//
// @Summary      List sessions
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mentorship ID"
// @Success      200  {array}   domain.MentorshipSession
// @Router       /mentorships/{id}/sessions [get]
func (h *MentorshipHandler) ListSessions(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	list, err := h.mentorship.ListSessions(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// StartSession marks a scheduled session as in progress.
//
// @Summary      Start a session
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Session ID"
// @Success      200  {object}  domain.MentorshipSession
// @Router       /sessions/{id}/start [post]
func (h *MentorshipHandler) StartSession(c echo.Context) error {
	return h.session(c, h.mentorship.StartSession)
}

// EndSession completes an in-progress session.
//
// @Summary      End a session
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Session ID"
// @Success      200  {object}  domain.MentorshipSession
// @Router       /sessions/{id}/end [post]
func (h *MentorshipHandler) EndSession(c echo.Context) error {
	return h.session(c, h.mentorship.EndSession)
}

func (h *MentorshipHandler) session(c echo.Context, op func(context.Context, domain.Actor, uint) (*domain.MentorshipSession, error)) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	s, err := op(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
