package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/api/metrics"
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns projects matching the filters.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Project status"
// @Param        category    query     string  false  "Category"
// @Param        creator_id  query     int     false  "Creator"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Param        offset      query     int     false  "Offset"
// @Success      200         {object}  listResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var q listProjectsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	projects, total, err := h.projects.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, projects))
}

// Create drafts a new project owned by the caller.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  ports.ProjectView
// @Failure      400   {object}  map[string]any
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.projects.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// Stats summarises the funding ledger.
//
// @Summary      Funding statistics
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FundingStats
// @Router       /projects/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.projects.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Get returns one project with its derived funding fields.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  ports.ProjectView
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	view, err := h.projects.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update edits a draft project.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  ports.ProjectView
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.projects.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Submit sends a draft for review.
//
// @Summary      Submit a project for review
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  ports.ProjectView
// @Router       /projects/{id}/submit [post]
func (h *ProjectHandler) Submit(c echo.Context) error {
	return h.transition(c, h.projects.Submit)
}

// Activate opens a project for contributions.
//
// @Summary      Activate a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  ports.ProjectView
// @Router       /projects/{id}/activate [post]
func (h *ProjectHandler) Activate(c echo.Context) error {
	return h.transition(c, h.projects.Activate)
}

// Cancel withdraws a project.
//
// @Summary      Cancel a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  ports.ProjectView
// @Router       /projects/{id}/cancel [post]
func (h *ProjectHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.projects.Cancel)
}

// Close settles an active project as funded or expired.
//
// @Summary      Close a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  ports.ProjectView
// @Router       /projects/{id}/close [post]
func (h *ProjectHandler) Close(c echo.Context) error {
	return h.transition(c, h.projects.Close)
}

// Reject turns down a pending project.
//
// @Summary      Reject a project (admin)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project ID"
// @Param        body  body      rejectProjectRequest  true  "Reason"
// @Success      200   {object}  ports.ProjectView
// @Failure      403   {object}  map[string]string
// @Router       /projects/{id}/reject [post]
func (h *ProjectHandler) Reject(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req rejectProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.projects.Reject(c.Request().Context(), actor, id, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *ProjectHandler) transition(c echo.Context, op func(context.Context, domain.Actor, uint) (*ports.ProjectView, error)) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	view, err := op(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Contribute pledges an amount to an active project. A repeated
// Idempotency-Key from the same caller returns the original contribution, or
// 400 while the first request with that key is still running.
//
// @Summary      Contribute to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int                true   "Project ID"
// @Param        Idempotency-Key  header    string             false  "Client-chosen replay key"
// @Param        body             body      contributeRequest  true   "Contribution"
// @Success      201              {object}  contributionResponse
// @Success      200              {object}  contributionResponse  "replayed"
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /projects/{id}/contributions [post]
func (h *ProjectHandler) Contribute(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req contributeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	res, err := h.projects.Contribute(c.Request().Context(), actor, id, req.toInput(key))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	} else {
		metrics.ContributionsTotal.WithLabelValues(string(res.Contribution.ContributionType)).Inc()
		metrics.ContributedCentsTotal.Add(float64(res.Contribution.Amount))
	}
	return c.JSON(status, contributionResponse{
		Contribution: res.Contribution,
		Project:      res.Project,
		Replayed:     res.Replayed,
	})
}

// ListContributions lists a project's public contributions.
//
// @Summary      List contributions
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {array}   domain.Contribution
// @Router       /projects/{id}/contributions [get]
func (h *ProjectHandler) ListContributions(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	list, err := h.projects.ListContributions(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// MyContributions lists the caller's contributions, anonymous ones included.
//
// @Summary      Own contributions
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Contribution
// @Router       /users/me/contributions [get]
func (h *ProjectHandler) MyContributions(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	list, err := h.projects.MyContributions(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
