package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// stubProjectService implements only what the tests call; anything else
// panics through the nil embedded interface.
type stubProjectService struct {
	ports.ProjectService
	contributeFn func(ctx context.Context, actor domain.Actor, projectID uint, in ports.ContributeInput) (*ports.ContributionResult, error)
	listFn       func(ctx context.Context, filter ports.ListProjectsFilter) ([]*ports.ProjectView, int64, error)
	submitFn     func(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error)
}

func (s *stubProjectService) Contribute(ctx context.Context, actor domain.Actor, projectID uint, in ports.ContributeInput) (*ports.ContributionResult, error) {
	return s.contributeFn(ctx, actor, projectID, in)
}

func (s *stubProjectService) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*ports.ProjectView, int64, error) {
	return s.listFn(ctx, filter)
}

func (s *stubProjectService) Submit(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
	return s.submitFn(ctx, actor, id)
}

func contributionFixture(replayed bool) *ports.ContributionResult {
	project := &domain.Project{ID: 7, Title: "Library fund", TargetAmount: 10000, CurrentAmount: 4050, Status: domain.ProjectActive}
	return &ports.ContributionResult{
		Contribution: &domain.Contribution{ID: 3, ProjectID: 7, ContributorID: 1, Amount: 4050, ContributionType: domain.ContributionOneTime},
		Project:      &ports.ProjectView{Project: project, FundingPercentage: 40.5},
		Replayed:     replayed,
	}
}

func TestProjectHandler_Contribute_Created(t *testing.T) {
	var got ports.ContributeInput
	stub := &stubProjectService{
		contributeFn: func(ctx context.Context, actor domain.Actor, projectID uint, in ports.ContributeInput) (*ports.ContributionResult, error) {
			if projectID != 7 || actor.UserID != alice.UserID {
				t.Fatalf("unexpected project %d / actor %+v", projectID, actor)
			}
			got = in
			return contributionFixture(false), nil
		},
	}
	c, rec := newContext(testRequest{
		method:  http.MethodPost,
		target:  "/api/v1/projects/7/contribute",
		body:    `{"amount":"40.50","is_anonymous":true}`,
		actor:   &alice,
		params:  map[string]string{"id": "7"},
		headers: map[string]string{"Idempotency-Key": "abc-123"},
	})

	if err := NewProjectHandler(stub).Contribute(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Amount != 4050 || !got.IsAnonymous || got.IdempotencyKey != "abc-123" {
		t.Fatalf("input not mapped: %+v", got)
	}
	body := decode(t, rec)
	if body["replayed"] != false {
		t.Fatalf("expected replayed=false, got %v", body["replayed"])
	}
	project := body["project"].(map[string]any)
	if project["current_amount"] != 40.5 || project["funding_percentage"] != 40.5 {
		t.Fatalf("unexpected project payload: %+v", project)
	}
}

func TestProjectHandler_Contribute_ReplayReturnsOK(t *testing.T) {
	stub := &stubProjectService{
		contributeFn: func(ctx context.Context, actor domain.Actor, projectID uint, in ports.ContributeInput) (*ports.ContributionResult, error) {
			return contributionFixture(true), nil
		},
	}
	c, rec := newContext(testRequest{
		method:  http.MethodPost,
		target:  "/api/v1/projects/7/contribute",
		body:    `{"amount":40.5}`,
		actor:   &alice,
		params:  map[string]string{"id": "7"},
		headers: map[string]string{"Idempotency-Key": "abc-123"},
	})

	if err := NewProjectHandler(stub).Contribute(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestProjectHandler_Contribute_RejectsMalformedAmounts(t *testing.T) {
	bodies := []string{
		`{"amount":"1.005"}`,
		`{"amount":"--5"}`,
		`{"amount":"1.-5"}`,
		`{"amount":184467440737095517.00}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c, _ := newContext(testRequest{
				method: http.MethodPost,
				target: "/api/v1/projects/7/contributions",
				body:   body,
				actor:  &alice,
				params: map[string]string{"id": "7"},
			})

			err := NewProjectHandler(&stubProjectService{}).Contribute(c)
			if !errors.Is(err, domain.ErrInvalidMoney) || !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected an invalid amount error, got %v", err)
			}
		})
	}
}

func TestProjectHandler_Contribute_InvalidPayload(t *testing.T) {
	c, _ := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/projects/7/contributions",
		body:   `{"amount":`,
		actor:  &alice,
		params: map[string]string{"id": "7"},
	})

	if code := httpStatus(t, NewProjectHandler(&stubProjectService{}).Contribute(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestProjectHandler_Contribute_ServiceError(t *testing.T) {
	stub := &stubProjectService{
		contributeFn: func(ctx context.Context, actor domain.Actor, projectID uint, in ports.ContributeInput) (*ports.ContributionResult, error) {
			return nil, domain.ErrProjectNotActive
		},
	}
	c, _ := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/projects/7/contribute",
		body:   `{"amount":"10"}`,
		actor:  &alice,
		params: map[string]string{"id": "7"},
	})

	if err := NewProjectHandler(stub).Contribute(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestProjectHandler_Contribute_BadID(t *testing.T) {
	c, _ := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/projects/abc/contribute",
		body:   `{"amount":"10"}`,
		actor:  &alice,
		params: map[string]string{"id": "abc"},
	})

	fields := validationFields(t, NewProjectHandler(&stubProjectService{}).Contribute(c))
	if fields["id"] == "" {
		t.Fatalf("expected id field error, got %v", fields)
	}
}

func TestProjectHandler_List_BindsFilter(t *testing.T) {
	stub := &stubProjectService{
		listFn: func(ctx context.Context, filter ports.ListProjectsFilter) ([]*ports.ProjectView, int64, error) {
			if filter.Status != "active" || filter.Limit != 5 || filter.Offset != 10 {
				t.Fatalf("filter not bound: %+v", filter)
			}
			return []*ports.ProjectView{{Project: &domain.Project{ID: 1}}}, 11, nil
		},
	}
	c, rec := newContext(testRequest{
		method: http.MethodGet,
		target: "/api/v1/projects?status=active&limit=5&offset=10",
		actor:  &alice,
	})

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["count"] != float64(11) {
		t.Fatalf("expected count 11, got %v", body["count"])
	}
	if results := body["results"].([]any); len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestProjectHandler_List_RejectsUnknownStatus(t *testing.T) {
	c, _ := newContext(testRequest{method: http.MethodGet, target: "/api/v1/projects?status=bogus", actor: &alice})

	fields := validationFields(t, NewProjectHandler(&stubProjectService{}).List(c))
	if fields["status"] == "" {
		t.Fatalf("expected status field error, got %v", fields)
	}
}

func TestProjectHandler_Submit(t *testing.T) {
	stub := &stubProjectService{
		submitFn: func(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
			return &ports.ProjectView{Project: &domain.Project{ID: id, Status: domain.ProjectPending}}, nil
		},
	}
	c, rec := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/projects/4/submit",
		actor:  &alice,
		params: map[string]string{"id": "4"},
	})

	if err := NewProjectHandler(stub).Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["status"] != "pending" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
