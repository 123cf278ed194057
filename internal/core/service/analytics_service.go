package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	defaultTrendingDays = 7
	maxTrendingDays     = 90
)

type analyticsService struct {
	repo  ports.AnalyticsRepository
	cache ports.SummaryCache
	log   zerolog.Logger
}

// NewAnalyticsService returns an AnalyticsService. cache may be nil, in
// which case the platform summary is computed on every call.
func NewAnalyticsService(repo ports.AnalyticsRepository, cache ports.SummaryCache, log zerolog.Logger) ports.AnalyticsService {
	return &analyticsService{repo: repo, cache: cache, log: log}
}

func (s *analyticsService) Dashboard(ctx context.Context, actor domain.Actor) (*domain.Dashboard, error) {
	return s.repo.Dashboard(ctx, actor.UserID)
}

// PlatformSummary is admin only. Cache failures degrade to a live query.
func (s *analyticsService) PlatformSummary(ctx context.Context, actor domain.Actor) (*domain.PlatformSummary, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("summary cache read failed")
		}
		if ok {
			return cached, nil
		}
	}

	summary, err := s.repo.PlatformSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.log.Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return summary, nil
}

func (s *analyticsService) TopPosts(ctx context.Context, days, limit int) ([]*domain.PostEngagement, error) {
	if days <= 0 {
		days = defaultTrendingDays
	}
	if days > maxTrendingDays {
		days = maxTrendingDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.TopPosts(ctx, since, limit)
}
