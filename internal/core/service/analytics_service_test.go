package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

type stubAnalyticsRepo struct {
	summaryCalls int
	since        time.Time
	limit        int
}

func (r *stubAnalyticsRepo) Dashboard(_ context.Context, userID uint) (*domain.Dashboard, error) {
	return &domain.Dashboard{Posts: int64(userID)}, nil
}

func (r *stubAnalyticsRepo) PlatformSummary(_ context.Context) (*domain.PlatformSummary, error) {
	r.summaryCalls++
	return &domain.PlatformSummary{Users: 42, GeneratedAt: time.Now().UTC()}, nil
}

func (r *stubAnalyticsRepo) TopPosts(_ context.Context, since time.Time, limit int) ([]*domain.PostEngagement, error) {
	r.since = since
	r.limit = limit
	return nil, nil
}

type stubSummaryCache struct {
	stored  *domain.PlatformSummary
	getErr  error
	setErr  error
	setCall int
}

func (c *stubSummaryCache) Get(_ context.Context) (*domain.PlatformSummary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.stored, c.stored != nil, nil
}

func (c *stubSummaryCache) Set(_ context.Context, s *domain.PlatformSummary) error {
	c.setCall++
	if c.setErr != nil {
		return c.setErr
	}
	c.stored = s
	return nil
}

var adminActor = domain.Actor{UserID: 1, Username: "admin", UserType: domain.UserTypeAdmin}

func TestAnalyticsService_PlatformSummary_AdminOnly(t *testing.T) {
	svc := NewAnalyticsService(&stubAnalyticsRepo{}, nil, zerolog.Nop())

	_, err := svc.PlatformSummary(context.Background(), domain.Actor{UserID: 2, UserType: domain.UserTypeAlumni})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAnalyticsService_PlatformSummary_Cached(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	cache := &stubSummaryCache{}
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())

	for range 3 {
		s, err := svc.PlatformSummary(context.Background(), adminActor)
		if err != nil {
			t.Fatalf("PlatformSummary returned error: %v", err)
		}
		if s.Users != 42 {
			t.Fatalf("unexpected summary: %+v", s)
		}
	}
	if repo.summaryCalls != 1 {
		t.Fatalf("expected one computation, got %d", repo.summaryCalls)
	}
}

func TestAnalyticsService_PlatformSummary_CacheFailure(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	cache := &stubSummaryCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())

	if _, err := svc.PlatformSummary(context.Background(), adminActor); err != nil {
		t.Fatalf("cache failures should not surface: %v", err)
	}
	if repo.summaryCalls != 1 || cache.setCall != 1 {
		t.Fatalf("expected live computation and one write attempt, got %d/%d", repo.summaryCalls, cache.setCall)
	}
}

func TestAnalyticsService_TopPosts_DefaultWindow(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := NewAnalyticsService(repo, nil, zerolog.Nop())

	if _, err := svc.TopPosts(context.Background(), 0, 5); err != nil {
		t.Fatalf("TopPosts returned error: %v", err)
	}
	want := time.Now().UTC().AddDate(0, 0, -defaultTrendingDays)
	if d := want.Sub(repo.since); d < 0 || d > time.Minute {
		t.Fatalf("unexpected window start: %v", repo.since)
	}
	if repo.limit != 5 {
		t.Fatalf("expected limit 5, got %d", repo.limit)
	}
}
