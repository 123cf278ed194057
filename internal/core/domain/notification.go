package domain

import "time"

type NotificationType string

const (
	NotifyConnectionRequest  NotificationType = "connection_request"
	NotifyConnectionAccepted NotificationType = "connection_accepted"
	NotifyPostLiked          NotificationType = "post_liked"
	NotifyPostCommented      NotificationType = "post_commented"
	NotifyPostShared         NotificationType = "post_shared"
	NotifyProjectFunded      NotificationType = "project_funded"
	NotifyMentorshipRequest  NotificationType = "mentorship_request"
	NotifyMentorshipAccepted NotificationType = "mentorship_accepted"
	NotifyClubInvitation     NotificationType = "club_invitation"
	NotifyEventReminder      NotificationType = "event_reminder"
	NotifySystem             NotificationType = "system"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// RelatedKind names the entity type a notification points at.
type RelatedKind string

const (
	RelatedUser              RelatedKind = "user"
	RelatedConnection        RelatedKind = "connection"
	RelatedPost              RelatedKind = "post"
	RelatedComment           RelatedKind = "comment"
	RelatedClub              RelatedKind = "club"
	RelatedClubEvent         RelatedKind = "club_event"
	RelatedProject           RelatedKind = "project"
	RelatedContribution      RelatedKind = "contribution"
	RelatedMentorshipRequest RelatedKind = "mentorship_request"
)

// RelatedRef is a tagged reference to one entity of a known kind. The zero
// value means "no related object".
type RelatedRef struct {
	Kind RelatedKind `json:"kind" gorm:"column:related_kind;size:30"`
	ID   uint        `json:"id" gorm:"column:related_id"`
}

// IsZero reports whether the reference is empty.
func (r RelatedRef) IsZero() bool {
	return r.Kind == "" || r.ID == 0
}

// Ref is shorthand for building a RelatedRef.
func Ref(kind RelatedKind, id uint) RelatedRef {
	return RelatedRef{Kind: kind, ID: id}
}

// Notification is an inbox entry. Only the read state changes after creation.
type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"not null;index:idx_notification_user_read"`
	NotificationType NotificationType `json:"notification_type" gorm:"size:50;not null"`
	Title            string           `json:"title" gorm:"size:200;not null"`
	Message          string           `json:"message" gorm:"not null"`
	Priority         Priority         `json:"priority" gorm:"size:20;not null;default:medium"`
	Related          RelatedRef       `json:"related_object" gorm:"embedded"`
	IsRead           bool             `json:"is_read" gorm:"not null;default:false;index:idx_notification_user_read"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
	ReadAt           *time.Time       `json:"read_at"`
}

// NotificationInput carries what a producer supplies to notify.
type NotificationInput struct {
	UserID   uint
	Type     NotificationType
	Title    string
	Message  string
	Priority Priority
	Related  RelatedRef
}

// NotificationStats counts a user's inbox.
type NotificationStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Read   int64 `json:"read"`
}

type DigestFrequency string

const (
	DigestImmediate DigestFrequency = "immediate"
	DigestDaily     DigestFrequency = "daily"
	DigestWeekly    DigestFrequency = "weekly"
	DigestNever     DigestFrequency = "never"
)

// NotificationPreference controls realtime delivery per category. Records
// are always persisted regardless of preferences.
type NotificationPreference struct {
	ID                     uint            `json:"-" gorm:"primaryKey"`
	UserID                 uint            `json:"user_id" gorm:"not null;uniqueIndex"`
	PushConnectionRequests bool            `json:"push_connection_requests"`
	PushMentorshipRequests bool            `json:"push_mentorship_requests"`
	PushPostInteractions   bool            `json:"push_post_interactions"`
	PushProjectUpdates     bool            `json:"push_project_updates"`
	PushClubActivities     bool            `json:"push_club_activities"`
	DigestFrequency        DigestFrequency `json:"digest_frequency" gorm:"size:20;not null;default:immediate"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// DefaultPreferences returns the preferences of a user who never set any.
func DefaultPreferences(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:                 userID,
		PushConnectionRequests: true,
		PushMentorshipRequests: true,
		PushPostInteractions:   true,
		PushProjectUpdates:     true,
		PushClubActivities:     true,
		DigestFrequency:        DigestImmediate,
	}
}

// Allows reports whether a notification of type t may be pushed in realtime.
func (p *NotificationPreference) Allows(t NotificationType) bool {
	switch t {
	case NotifyConnectionRequest, NotifyConnectionAccepted:
		return p.PushConnectionRequests
	case NotifyMentorshipRequest, NotifyMentorshipAccepted:
		return p.PushMentorshipRequests
	case NotifyPostLiked, NotifyPostCommented, NotifyPostShared:
		return p.PushPostInteractions
	case NotifyProjectFunded:
		return p.PushProjectUpdates
	case NotifyClubInvitation, NotifyEventReminder:
		return p.PushClubActivities
	}
	return true
}
