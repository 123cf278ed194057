package domain

import "time"

type ClubVisibility string

const (
	ClubPublic     ClubVisibility = "public"
	ClubPrivate    ClubVisibility = "private"
	ClubInviteOnly ClubVisibility = "invite_only"
)

type ClubStatus string

const (
	ClubActive    ClubStatus = "active"
	ClubInactive  ClubStatus = "inactive"
	ClubSuspended ClubStatus = "suspended"
	ClubPending   ClubStatus = "pending"
)

// Club is a community group. MembersCount always equals the number of
// memberships in MembershipActive.
type Club struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"size:200;not null"`
	Description      string         `json:"description" gorm:"not null"`
	ShortDescription string         `json:"short_description" gorm:"size:500"`
	Category         string         `json:"category" gorm:"size:20;index"`
	Tags             []string       `json:"tags" gorm:"serializer:json"`
	OwnerID          uint           `json:"owner_id" gorm:"not null;index"`
	Visibility       ClubVisibility `json:"visibility" gorm:"size:20;not null;default:public"`
	Status           ClubStatus     `json:"status" gorm:"size:20;not null;default:active;index"`
	IsVerified       bool           `json:"is_verified"`
	MembersCount     int64          `json:"members_count" gorm:"not null;default:0"`
	PostsCount       int64          `json:"posts_count" gorm:"not null;default:0"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type MembershipRole string

const (
	RoleMember    MembershipRole = "member"
	RoleModerator MembershipRole = "moderator"
	RoleAdmin     MembershipRole = "admin"
)

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
	MembershipBanned   MembershipStatus = "banned"
)

// Membership is the (club, user) edge.
type Membership struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	ClubID   uint             `json:"club_id" gorm:"not null;uniqueIndex:idx_club_user"`
	UserID   uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_club_user;index"`
	User     *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Club     *Club            `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	Role     MembershipRole   `json:"role" gorm:"size:20;not null;default:member"`
	Status   MembershipStatus `json:"status" gorm:"size:20;not null;default:active"`
	JoinedAt time.Time        `json:"joined_at"`
}

// JoinResult reports the outcome of an idempotent join.
type JoinResult struct {
	Joined       bool   `json:"joined"`
	Message      string `json:"message"`
	MembersCount int64  `json:"members_count"`
}

const (
	MsgJoinedClub    = "joined club successfully"
	MsgAlreadyMember = "already a member"
	MsgLeftClub      = "left club successfully"
)

type ClubPostType string

const (
	ClubPostGeneral      ClubPostType = "general"
	ClubPostAnnouncement ClubPostType = "announcement"
	ClubPostEvent        ClubPostType = "event"
	ClubPostDiscussion   ClubPostType = "discussion"
	ClubPostResource     ClubPostType = "resource"
)

// ClubPost is a message on a club's board. Club.PostsCount counts these rows.
type ClubPost struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	ClubID    uint         `json:"club_id" gorm:"not null;index:idx_club_post_created"`
	AuthorID  uint         `json:"author_id" gorm:"not null;index"`
	Author    *User        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PostType  ClubPostType `json:"post_type" gorm:"size:20;not null;default:general"`
	Title     string       `json:"title" gorm:"size:200"`
	Content   string       `json:"content" gorm:"not null"`
	IsPinned  bool         `json:"is_pinned"`
	CreatedAt time.Time    `json:"created_at" gorm:"index:idx_club_post_created"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type EventType string

const (
	EventMeeting    EventType = "meeting"
	EventWorkshop   EventType = "workshop"
	EventSocial     EventType = "social"
	EventConference EventType = "conference"
	EventNetworking EventType = "networking"
	EventOther      EventType = "other"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventDraft:     {EventPublished, EventCancelled},
	EventPublished: {EventCancelled, EventCompleted},
}

// CanTransitionTo reports whether an event may move from s to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type LocationType string

const (
	LocationPhysical LocationType = "physical"
	LocationVirtual  LocationType = "virtual"
	LocationHybrid   LocationType = "hybrid"
)

// ClubEvent is scheduled by a club member. Drafts and private events are
// only listed to members.
type ClubEvent struct {
	ID                   uint         `json:"id" gorm:"primaryKey"`
	ClubID               uint         `json:"club_id" gorm:"not null;index:idx_club_event_start"`
	Club                 *Club        `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	OrganizerID          uint         `json:"organizer_id" gorm:"not null;index"`
	Organizer            *User        `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`
	Title                string       `json:"title" gorm:"size:200;not null"`
	Description          string       `json:"description" gorm:"not null"`
	EventType            EventType    `json:"event_type" gorm:"size:20;not null;default:meeting"`
	StartDate            time.Time    `json:"start_date" gorm:"not null;index:idx_club_event_start"`
	EndDate              time.Time    `json:"end_date" gorm:"not null"`
	Timezone             string       `json:"timezone" gorm:"size:50;not null;default:UTC"`
	LocationType         LocationType `json:"location_type" gorm:"size:20;not null;default:virtual"`
	Location             string       `json:"location" gorm:"size:200"`
	MeetingLink          string       `json:"meeting_link" gorm:"size:500"`
	MaxAttendees         *int         `json:"max_attendees"`
	RegistrationRequired bool         `json:"registration_required"`
	Status               EventStatus  `json:"status" gorm:"size:20;not null;default:draft;index"`
	IsPublic             bool         `json:"is_public"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Listed reports whether non-members may see the event.
func (e *ClubEvent) Listed() bool {
	return e.IsPublic && e.Status != EventDraft
}

// ClubPostResult is a new board post together with the club's posts_count.
type ClubPostResult struct {
	Post       *ClubPost `json:"post"`
	PostsCount int64     `json:"posts_count"`
}
