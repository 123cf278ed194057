package ports

import (
	"context"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// AnalyticsRepository runs live aggregate queries across every store.
type AnalyticsRepository interface {
	Dashboard(ctx context.Context, userID uint) (*domain.Dashboard, error)
	PlatformSummary(ctx context.Context) (*domain.PlatformSummary, error)
	TopPosts(ctx context.Context, since time.Time, limit int) ([]*domain.PostEngagement, error)
}

// SummaryCache stores the platform summary between recomputations.
type SummaryCache interface {
	Get(ctx context.Context) (*domain.PlatformSummary, bool, error)
	Set(ctx context.Context, s *domain.PlatformSummary) error
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, actor domain.Actor) (*domain.Dashboard, error)
	PlatformSummary(ctx context.Context, actor domain.Actor) (*domain.PlatformSummary, error)
	TopPosts(ctx context.Context, days, limit int) ([]*domain.PostEngagement, error)
}
