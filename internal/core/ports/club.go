package ports

import (
	"context"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

type ListClubsFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// ClubRepository defines persistence operations for clubs and memberships.
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	FindByID(ctx context.Context, id uint) (*domain.Club, error)
	List(ctx context.Context, filter ListClubsFilter) ([]*domain.Club, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error

	FindMembership(ctx context.Context, clubID, userID uint) (*domain.Membership, error)
	// InsertMembershipIfAbsent creates m unless a row for (club, user) exists;
	// created reports which happened.
	InsertMembershipIfAbsent(ctx context.Context, m *domain.Membership) (created bool, err error)
	// DeleteMembership removes the (club, user) row and returns it, or
	// domain.ErrNotAMember when there was none.
	DeleteMembership(ctx context.Context, clubID, userID uint) (*domain.Membership, error)
	// AdjustMembersCount adds delta to members_count, never going below zero,
	// and returns the new value.
	AdjustMembersCount(ctx context.Context, clubID uint, delta int64) (int64, error)
	ListMembers(ctx context.Context, clubID uint) ([]*domain.Membership, error)
	ListUserMemberships(ctx context.Context, userID uint) ([]*domain.Membership, error)
	// Delete removes the club together with its memberships, posts and events.
	Delete(ctx context.Context, id uint) error

	InsertPost(ctx context.Context, p *domain.ClubPost) error
	ListPosts(ctx context.Context, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error)
	// AdjustPostsCount adds delta to posts_count, never going below zero,
	// and returns the new value.
	AdjustPostsCount(ctx context.Context, clubID uint, delta int64) (int64, error)

	InsertEvent(ctx context.Context, e *domain.ClubEvent) error
	FindEvent(ctx context.Context, id uint) (*domain.ClubEvent, error)
	// ListEvents returns a club's events by start date. With listedOnly set,
	// drafts and private events are left out.
	ListEvents(ctx context.Context, clubID uint, listedOnly bool) ([]*domain.ClubEvent, error)
	UpdateEvent(ctx context.Context, id uint, fields map[string]any) error
	DeleteEvent(ctx context.Context, id uint) error
}

type CreateClubInput struct {
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Tags             []string
	Visibility       domain.ClubVisibility
}

type UpdateClubInput struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Category         *string
	Tags             []string
	Visibility       *domain.ClubVisibility
}

type CreateClubPostInput struct {
	PostType domain.ClubPostType
	Title    string
	Content  string
	IsPinned bool
}

type CreateEventInput struct {
	Title                string
	Description          string
	EventType            domain.EventType
	StartDate            time.Time
	EndDate              time.Time
	Timezone             string
	LocationType         domain.LocationType
	Location             string
	MeetingLink          string
	MaxAttendees         *int
	RegistrationRequired bool
	Status               domain.EventStatus
	IsPublic             *bool
}

type UpdateEventInput struct {
	Title        *string
	Description  *string
	EventType    *domain.EventType
	StartDate    *time.Time
	EndDate      *time.Time
	LocationType *domain.LocationType
	Location     *string
	MeetingLink  *string
	MaxAttendees *int
	Status       *domain.EventStatus
	IsPublic     *bool
}

type ClubService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateClubInput) (*domain.Club, error)
	Get(ctx context.Context, id uint) (*domain.Club, error)
	List(ctx context.Context, filter ListClubsFilter) ([]*domain.Club, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uint, in UpdateClubInput) (*domain.Club, error)
	Join(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error)
	Leave(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error)
	Members(ctx context.Context, clubID uint) ([]*domain.Membership, error)
	UserClubs(ctx context.Context, actor domain.Actor) ([]*domain.Membership, error)
	Delete(ctx context.Context, actor domain.Actor, id uint) error

	CreatePost(ctx context.Context, actor domain.Actor, clubID uint, in CreateClubPostInput) (*domain.ClubPostResult, error)
	ListPosts(ctx context.Context, actor domain.Actor, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error)

	CreateEvent(ctx context.Context, actor domain.Actor, clubID uint, in CreateEventInput) (*domain.ClubEvent, error)
	ListEvents(ctx context.Context, actor domain.Actor, clubID uint) ([]*domain.ClubEvent, error)
	GetEvent(ctx context.Context, actor domain.Actor, id uint) (*domain.ClubEvent, error)
	UpdateEvent(ctx context.Context, actor domain.Actor, id uint, in UpdateEventInput) (*domain.ClubEvent, error)
	DeleteEvent(ctx context.Context, actor domain.Actor, id uint) error
}
