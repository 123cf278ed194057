package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type stubClubService struct {
	ports.ClubService
	createEventFn func(ctx context.Context, actor domain.Actor, clubID uint, in ports.CreateEventInput) (*domain.ClubEvent, error)
	listPostsFn   func(ctx context.Context, actor domain.Actor, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error)
	deleteFn      func(ctx context.Context, actor domain.Actor, id uint) error
	joinFn        func(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error)
	leaveFn       func(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error)
}

func (s *stubClubService) CreateEvent(ctx context.Context, actor domain.Actor, clubID uint, in ports.CreateEventInput) (*domain.ClubEvent, error) {
	return s.createEventFn(ctx, actor, clubID, in)
}

func (s *stubClubService) ListPosts(ctx context.Context, actor domain.Actor, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error) {
	return s.listPostsFn(ctx, actor, clubID, limit, offset)
}

func (s *stubClubService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	return s.deleteFn(ctx, actor, id)
}

func TestClubHandler_CreateEvent(t *testing.T) {
	stub := &stubClubService{
		createEventFn: func(ctx context.Context, actor domain.Actor, clubID uint, in ports.CreateEventInput) (*domain.ClubEvent, error) {
			if clubID != 4 || in.Status != domain.EventPublished || in.StartDate.IsZero() {
				t.Fatalf("unexpected input: club=%d %+v", clubID, in)
			}
			return &domain.ClubEvent{ID: 11, ClubID: clubID, Title: in.Title, Status: in.Status}, nil
		},
	}
	c, rec := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/clubs/4/events",
		body: `{"title":"Demo day","description":"show and tell","status":"published",` +
			`"start_date":"2026-11-01T18:00:00Z","end_date":"2026-11-01T20:00:00Z"}`,
		actor:  &alice,
		params: map[string]string{"id": "4"},
	})

	if err := NewClubHandler(stub).CreateEvent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["id"] != float64(11) || body["status"] != "published" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestClubHandler_CreateEvent_Validation(t *testing.T) {
	stub := &stubClubService{}
	c, _ := newContext(testRequest{
		method: http.MethodPost,
		target: "/api/v1/clubs/4/events",
		body:   `{"title":"","status":"completed","meeting_link":"not a url"}`,
		actor:  &alice,
		params: map[string]string{"id": "4"},
	})

	err := NewClubHandler(stub).CreateEvent(c)
	fields := validationFields(t, err)
	for _, f := range []string{"title", "status", "meeting_link", "start_date"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("expected a %s error, got %v", f, fields)
		}
	}
}

func TestClubHandler_Posts(t *testing.T) {
	stub := &stubClubService{
		listPostsFn: func(ctx context.Context, actor domain.Actor, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error) {
			if clubID != 2 || limit != 5 || offset != 10 {
				t.Fatalf("unexpected args: %d %d %d", clubID, limit, offset)
			}
			return []*domain.ClubPost{{ID: 1, ClubID: 2, Content: "hi"}}, 11, nil
		},
	}
	c, rec := newContext(testRequest{
		method: http.MethodGet,
		target: "/api/v1/clubs/2/posts?limit=5&offset=10",
		actor:  &alice,
		params: map[string]string{"id": "2"},
	})

	if err := NewClubHandler(stub).Posts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["count"] != float64(11) {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestClubHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubClubService{
		deleteFn: func(ctx context.Context, actor domain.Actor, id uint) error {
			return domain.ErrForbidden
		},
	}
	c, _ := newContext(testRequest{
		method: http.MethodDelete,
		target: "/api/v1/clubs/3",
		actor:  &alice,
		params: map[string]string{"id": "3"},
	})

	err := NewClubHandler(stub).Delete(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
