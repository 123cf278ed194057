package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// NotificationRepository implements ports.NotificationRepository using gorm.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) ports.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if err := conn(ctx, r.db).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) FindOwned(ctx context.Context, id, userID uint) (*domain.Notification, error) {
	var n domain.Notification
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Take(&n).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotificationNotFound, "find notification")
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint, at time.Time) (*domain.Notification, error) {
	var n domain.Notification
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Notification{}).
			Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
			Updates(map[string]any{"is_read": true, "read_at": at}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Take(&n).Error
	})
	if err != nil {
		return nil, notFound(err, domain.ErrNotificationNotFound, "mark notification read")
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	res := conn(ctx, r.db).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *NotificationRepository) List(
	ctx context.Context,
	userID uint,
	filter ports.ListNotificationsFilter,
) ([]*domain.Notification, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.Notification{}).Where("user_id = ?", userID)
		if filter.UnreadOnly {
			q = q.Where("is_read = ?", false)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var out []*domain.Notification
	if err := query().Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return out, total, nil
}

func (r *NotificationRepository) Stats(ctx context.Context, userID uint) (*domain.NotificationStats, error) {
	db := conn(ctx, r.db)
	var s domain.NotificationStats
	if err := db.Model(&domain.Notification{}).Where("user_id = ?", userID).Count(&s.Total).Error; err != nil {
		return nil, fmt.Errorf("notification stats: %w", err)
	}
	err := db.Model(&domain.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&s.Unread).Error
	if err != nil {
		return nil, fmt.Errorf("notification stats: %w", err)
	}
	s.Read = s.Total - s.Unread
	return &s, nil
}

// FindPreferences returns the stored preferences or the defaults when the
// user never saved any.
func (r *NotificationRepository) FindPreferences(ctx context.Context, userID uint) (*domain.NotificationPreference, error) {
	var p domain.NotificationPreference
	err := conn(ctx, r.db).Where("user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &p, nil
}

func (r *NotificationRepository) SavePreferences(ctx context.Context, p *domain.NotificationPreference) error {
	p.UpdatedAt = time.Now().UTC()
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"push_connection_requests",
			"push_mentorship_requests",
			"push_post_interactions",
			"push_project_updates",
			"push_club_activities",
			"digest_frequency",
			"updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
