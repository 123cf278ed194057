package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// AnalyticsRepository implements ports.AnalyticsRepository with live
// aggregate queries.
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) ports.AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Dashboard(ctx context.Context, userID uint) (*domain.Dashboard, error) {
	db := conn(ctx, r.db)
	var d domain.Dashboard

	err := runCounts(db, []countQuery{
		{&d.Connections, &domain.Connection{}, "status = ? AND (from_user_id = ? OR to_user_id = ?)", []any{domain.ConnectionAccepted, userID, userID}},
		{&d.PendingRequests, &domain.Connection{}, "status = ? AND to_user_id = ?", []any{domain.ConnectionPending, userID}},
		{&d.Posts, &domain.Post{}, "author_id = ?", []any{userID}},
		{&d.Clubs, &domain.Membership{}, "user_id = ? AND status = ?", []any{userID, domain.MembershipActive}},
		{&d.ProjectsCreated, &domain.Project{}, "creator_id = ?", []any{userID}},
		{&d.UnreadNotifications, &domain.Notification{}, "user_id = ? AND is_read = ?", []any{userID, false}},
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	err = db.Model(&domain.Post{}).Where("author_id = ?", userID).
		Select("COALESCE(SUM(likes_count), 0)").Scan(&d.LikesReceived).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard likes: %w", err)
	}

	var contributed int64
	err = db.Model(&domain.Contribution{}).Where("contributor_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").Scan(&contributed).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard contributions: %w", err)
	}
	d.AmountContributed = domain.Money(contributed)
	return &d, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

func (r *AnalyticsRepository) groupBy(db *gorm.DB, model any, column string) (map[string]int64, error) {
	var rows []groupCount
	err := db.Model(model).Select(column + " AS group_key, COUNT(*) AS total").Group(column).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.GroupKey] = row.Total
	}
	return out, nil
}

func (r *AnalyticsRepository) PlatformSummary(ctx context.Context) (*domain.PlatformSummary, error) {
	db := conn(ctx, r.db)
	s := domain.PlatformSummary{GeneratedAt: time.Now().UTC()}

	err := runCounts(db, []countQuery{
		{dst: &s.Users, model: &domain.User{}},
		{dst: &s.Connections, model: &domain.Connection{}, where: "status = ?", args: []any{domain.ConnectionAccepted}},
		{dst: &s.Clubs, model: &domain.Club{}},
		{dst: &s.Memberships, model: &domain.Membership{}, where: "status = ?", args: []any{domain.MembershipActive}},
		{dst: &s.Posts, model: &domain.Post{}},
		{dst: &s.Projects, model: &domain.Project{}},
		{dst: &s.Mentorships, model: &domain.MentorshipRequest{}, where: "status IN ?", args: []any{
			[]domain.MentorshipStatus{domain.MentorshipAccepted, domain.MentorshipCompleted},
		}},
		{dst: &s.Notifications, model: &domain.Notification{}},
	})
	if err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}

	if s.UsersByType, err = r.groupBy(db, &domain.User{}, "user_type"); err != nil {
		return nil, fmt.Errorf("users by type: %w", err)
	}
	if s.ProjectsByStatus, err = r.groupBy(db, &domain.Project{}, "status"); err != nil {
		return nil, fmt.Errorf("projects by status: %w", err)
	}

	var raised int64
	if err := db.Model(&domain.Contribution{}).Select("COALESCE(SUM(amount), 0)").Scan(&raised).Error; err != nil {
		return nil, fmt.Errorf("total raised: %w", err)
	}
	s.TotalRaised = domain.Money(raised)
	return &s, nil
}

func (r *AnalyticsRepository) TopPosts(ctx context.Context, since time.Time, limit int) ([]*domain.PostEngagement, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var out []*domain.PostEngagement
	err := conn(ctx, r.db).Model(&domain.Post{}).
		Select("id AS post_id, author_id, likes_count, comments_count, shares_count, "+
			"(likes_count + comments_count + shares_count) AS score").
		Where("created_at >= ? AND visibility = ?", since, domain.VisibilityPublic).
		Order("score DESC, id DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	return out, nil
}
