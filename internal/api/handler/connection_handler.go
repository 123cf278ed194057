package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type connectionRequest struct {
	ToUserID uint `json:"to_user_id" validate:"required"`
}

type respondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

type ConnectionHandler struct {
	connections ports.ConnectionService
}

func NewConnectionHandler(connections ports.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// Request sends a connection request.
//
// @Summary      Request a connection
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      connectionRequest  true  "Recipient"
// @Success      201   {object}  domain.Connection
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /connections [post]
func (h *ConnectionHandler) Request(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req connectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conn, err := h.connections.Request(c.Request().Context(), actor, req.ToUserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, conn)
}

// Respond accepts or rejects a pending request addressed to the caller.
//
// @Summary      Respond to a connection request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Connection ID"
// @Param        body  body      respondRequest  true  "accept or reject"
// @Success      200   {object}  domain.Connection
// @Failure      404   {object}  map[string]string
// @Router       /connections/{id}/respond [post]
func (h *ConnectionHandler) Respond(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req respondRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conn, err := h.connections.Respond(c.Request().Context(), actor, id, domain.ConnectionAction(req.Action))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conn)
}

// List returns the caller's accepted connections.
//
// @Summary      List connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Connection
// @Router       /connections [get]
func (h *ConnectionHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	conns, err := h.connections.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conns)
}

// Pending returns requests waiting on the caller.
//
// @Summary      List pending requests
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Connection
// @Router       /connections/pending [get]
func (h *ConnectionHandler) Pending(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	conns, err := h.connections.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conns)
}
