package ports

import (
	"context"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

type ListMentorsFilter struct {
	Expertise    string
	Availability string
	Limit        int
	Offset       int
}

// MentorshipRepository defines persistence operations for mentoring.
type MentorshipRepository interface {
	FindProfileByUser(ctx context.Context, userID uint) (*domain.MentorProfile, error)
	SaveProfile(ctx context.Context, p *domain.MentorProfile) error
	ListProfiles(ctx context.Context, filter ListMentorsFilter) ([]*domain.MentorProfile, int64, error)
	// AdjustProfileCounter adds delta to total_mentees or total_sessions.
	AdjustProfileCounter(ctx context.Context, userID uint, column string, delta int64) error

	CreateRequest(ctx context.Context, r *domain.MentorshipRequest) error
	FindRequest(ctx context.Context, id uint) (*domain.MentorshipRequest, error)
	FindRequestForUpdate(ctx context.Context, id uint) (*domain.MentorshipRequest, error)
	HasOpenRequest(ctx context.Context, menteeID, mentorID uint) (bool, error)
	UpdateRequest(ctx context.Context, id uint, fields map[string]any) error
	ListRequests(ctx context.Context, userID uint, asMentor bool) ([]*domain.MentorshipRequest, error)

	CreateSession(ctx context.Context, s *domain.MentorshipSession) error
	FindSessionForUpdate(ctx context.Context, id uint) (*domain.MentorshipSession, error)
	UpdateSession(ctx context.Context, id uint, fields map[string]any) error
	ListSessions(ctx context.Context, mentorshipID uint) ([]*domain.MentorshipSession, error)
}

const (
	CounterTotalMentees  = "total_mentees"
	CounterTotalSessions = "total_sessions"
)

type MentorProfileInput struct {
	Bio               string
	ExpertiseAreas    []string
	YearsOfExperience int
	CurrentCompany    string
	CurrentPosition   string
	Availability      domain.Availability
	MaxMentees        int
	Timezone          string
}

type MentorshipRequestInput struct {
	MentorID uint
	Subject  string
	Message  string
	Goals    string
}

type ScheduleSessionInput struct {
	Title           string
	Description     string
	SessionType     domain.SessionType
	ScheduledAt     time.Time
	DurationMinutes int
	MeetingLink     string
}

type MentorshipService interface {
	UpsertProfile(ctx context.Context, actor domain.Actor, in MentorProfileInput) (*domain.MentorProfile, error)
	GetProfile(ctx context.Context, userID uint) (*domain.MentorProfile, error)
	ListMentors(ctx context.Context, filter ListMentorsFilter) ([]*domain.MentorProfile, int64, error)
	Request(ctx context.Context, actor domain.Actor, in MentorshipRequestInput) (*domain.MentorshipRequest, error)
	Respond(ctx context.Context, actor domain.Actor, id uint, action domain.ConnectionAction, response string) (*domain.MentorshipRequest, error)
	Complete(ctx context.Context, actor domain.Actor, id uint) (*domain.MentorshipRequest, error)
	ListRequests(ctx context.Context, actor domain.Actor, asMentor bool) ([]*domain.MentorshipRequest, error)
	ScheduleSession(ctx context.Context, actor domain.Actor, mentorshipID uint, in ScheduleSessionInput) (*domain.MentorshipSession, error)
	StartSession(ctx context.Context, actor domain.Actor, sessionID uint) (*domain.MentorshipSession, error)
	EndSession(ctx context.Context, actor domain.Actor, sessionID uint) (*domain.MentorshipSession, error)
	ListSessions(ctx context.Context, actor domain.Actor, mentorshipID uint) ([]*domain.MentorshipSession, error)
}
