package ports

import (
	"context"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

type ListNotificationsFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationRepository defines persistence operations for user inboxes.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// FindOwned returns domain.ErrNotificationNotFound unless the notification
	// exists and belongs to userID.
	FindOwned(ctx context.Context, id, userID uint) (*domain.Notification, error)
	// MarkRead sets is_read and read_at on an owned unread notification and
	// returns the stored row. A read notification keeps its read_at.
	MarkRead(ctx context.Context, id, userID uint, at time.Time) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	List(ctx context.Context, userID uint, filter ListNotificationsFilter) ([]*domain.Notification, int64, error)
	Stats(ctx context.Context, userID uint) (*domain.NotificationStats, error)
	FindPreferences(ctx context.Context, userID uint) (*domain.NotificationPreference, error)
	SavePreferences(ctx context.Context, p *domain.NotificationPreference) error
}

// Notifier is the fan-out entry point used by the other services. Notify
// must be called with the ctx of the producer's transaction.
type Notifier interface {
	Notify(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
}

// Publisher pushes committed notifications to connected clients.
type Publisher interface {
	Publish(userID uint, n *domain.Notification)
}

// RelatedView is a notification with its related object resolved.
type RelatedView struct {
	*domain.Notification
	RelatedObject any `json:"related,omitempty"`
}

type PreferencesPatch struct {
	PushConnectionRequests *bool
	PushMentorshipRequests *bool
	PushPostInteractions   *bool
	PushProjectUpdates     *bool
	PushClubActivities     *bool
	DigestFrequency        *domain.DigestFrequency
}

type NotificationService interface {
	Notifier
	Get(ctx context.Context, actor domain.Actor, id uint) (*RelatedView, error)
	List(ctx context.Context, actor domain.Actor, filter ListNotificationsFilter) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, actor domain.Actor, id uint) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error)
	Stats(ctx context.Context, actor domain.Actor) (*domain.NotificationStats, error)
	Preferences(ctx context.Context, actor domain.Actor) (*domain.NotificationPreference, error)
	UpdatePreferences(ctx context.Context, actor domain.Actor, patch PreferencesPatch) (*domain.NotificationPreference, error)
}
