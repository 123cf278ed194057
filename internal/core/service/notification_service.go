package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var validDigestFrequencies = map[domain.DigestFrequency]bool{
	domain.DigestImmediate: true,
	domain.DigestDaily:     true,
	domain.DigestWeekly:    true,
	domain.DigestNever:     true,
}

type notificationService struct {
	repo      ports.NotificationRepository
	resolver  RelatedResolver
	publisher ports.Publisher
	log       zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
// publisher may be nil when no realtime transport is configured.
func NewNotificationService(
	repo ports.NotificationRepository,
	resolver RelatedResolver,
	publisher ports.Publisher,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{repo: repo, resolver: resolver, publisher: publisher, log: log}
}

// Notify persists the notification with the caller's ctx, so it commits or
// rolls back with the producer. The realtime push waits for the commit and
// honours the recipient's preferences.
func (s *notificationService) Notify(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	n := &domain.Notification{
		UserID:           in.UserID,
		NotificationType: in.Type,
		Title:            in.Title,
		Message:          in.Message,
		Priority:         in.Priority,
		Related:          in.Related,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		prefs, err := s.repo.FindPreferences(ctx, in.UserID)
		if err != nil {
			s.log.Warn().Err(err).Uint("user_id", in.UserID).Msg("failed to load notification preferences")
			prefs = domain.DefaultPreferences(in.UserID)
		}
		if prefs.Allows(n.NotificationType) {
			afterCommit(ctx, func() { s.publisher.Publish(n.UserID, n) })
		}
	}

	s.log.Debug().Uint("user_id", n.UserID).Str("type", string(n.NotificationType)).Msg("notification created")
	return n, nil
}

func (s *notificationService) Get(ctx context.Context, actor domain.Actor, id uint) (*ports.RelatedView, error) {
	n, err := s.repo.FindOwned(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	obj, err := s.resolver.Resolve(ctx, n.Related)
	if err != nil {
		return nil, err
	}
	return &ports.RelatedView{Notification: n, RelatedObject: obj}, nil
}

func (s *notificationService) List(
	ctx context.Context,
	actor domain.Actor,
	filter ports.ListNotificationsFilter,
) ([]*domain.Notification, int64, error) {
	return s.repo.List(ctx, actor.UserID, filter)
}

// MarkRead is idempotent; a second call keeps the first read_at.
func (s *notificationService) MarkRead(ctx context.Context, actor domain.Actor, id uint) (*domain.Notification, error) {
	return s.repo.MarkRead(ctx, id, actor.UserID, time.Now().UTC())
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, actor.UserID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	s.log.Debug().Uint("user_id", actor.UserID).Int64("updated", n).Msg("notifications marked read")
	return n, nil
}

func (s *notificationService) Stats(ctx context.Context, actor domain.Actor) (*domain.NotificationStats, error) {
	return s.repo.Stats(ctx, actor.UserID)
}

func (s *notificationService) Preferences(ctx context.Context, actor domain.Actor) (*domain.NotificationPreference, error) {
	return s.repo.FindPreferences(ctx, actor.UserID)
}

func (s *notificationService) UpdatePreferences(
	ctx context.Context,
	actor domain.Actor,
	patch ports.PreferencesPatch,
) (*domain.NotificationPreference, error) {
	p, err := s.repo.FindPreferences(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	apply := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&p.PushConnectionRequests, patch.PushConnectionRequests)
	apply(&p.PushMentorshipRequests, patch.PushMentorshipRequests)
	apply(&p.PushPostInteractions, patch.PushPostInteractions)
	apply(&p.PushProjectUpdates, patch.PushProjectUpdates)
	apply(&p.PushClubActivities, patch.PushClubActivities)
	if patch.DigestFrequency != nil {
		if !validDigestFrequencies[*patch.DigestFrequency] {
			return nil, domain.NewFieldError("digest_frequency", "digest frequency must be immediate, daily, weekly or never")
		}
		p.DigestFrequency = *patch.DigestFrequency
	}

	if err := s.repo.SavePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
