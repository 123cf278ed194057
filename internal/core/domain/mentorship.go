package domain

import "time"

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// MentorProfile is the mentoring side of a user. One per user.
type MentorProfile struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	UserID            uint         `json:"user_id" gorm:"not null;uniqueIndex"`
	User              *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Bio               string       `json:"bio" gorm:"not null"`
	ExpertiseAreas    []string     `json:"expertise_areas" gorm:"serializer:json"`
	YearsOfExperience int          `json:"years_of_experience"`
	CurrentCompany    string       `json:"current_company" gorm:"size:200"`
	CurrentPosition   string       `json:"current_position" gorm:"size:200"`
	Availability      Availability `json:"availability_status" gorm:"size:20;not null;default:available;index"`
	MaxMentees        int          `json:"max_mentees" gorm:"not null;default:3"`
	Timezone          string       `json:"timezone" gorm:"size:50;not null;default:UTC"`
	TotalMentees      int64        `json:"total_mentees" gorm:"not null;default:0"`
	TotalSessions     int64        `json:"total_sessions" gorm:"not null;default:0"`
	IsVerified        bool         `json:"is_verified"`
	IsActive          bool         `json:"is_active" gorm:"index"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// MentorshipStatus represents the lifecycle state of a mentorship request.
type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "pending"
	MentorshipAccepted  MentorshipStatus = "accepted"
	MentorshipRejected  MentorshipStatus = "rejected"
	MentorshipCompleted MentorshipStatus = "completed"
	MentorshipCancelled MentorshipStatus = "cancelled"
)

var mentorshipTransitions = map[MentorshipStatus][]MentorshipStatus{
	MentorshipPending:  {MentorshipAccepted, MentorshipRejected, MentorshipCancelled},
	MentorshipAccepted: {MentorshipCompleted, MentorshipCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s MentorshipStatus) CanTransitionTo(next MentorshipStatus) bool {
	for _, allowed := range mentorshipTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsOpen reports whether the request still blocks a new one for the same pair.
func (s MentorshipStatus) IsOpen() bool {
	return s == MentorshipPending || s == MentorshipAccepted
}

// MentorshipRequest is one mentee asking one mentor. A pair has at most one
// pending or accepted request at a time.
type MentorshipRequest struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	MenteeID       uint             `json:"mentee_id" gorm:"not null;index:idx_mentorship_pair;uniqueIndex:idx_mentorship_open,where:status = 'pending' OR status = 'accepted'"`
	MentorID       uint             `json:"mentor_id" gorm:"not null;index:idx_mentorship_pair;index;uniqueIndex:idx_mentorship_open,where:status = 'pending' OR status = 'accepted'"`
	Subject        string           `json:"subject" gorm:"size:200;not null"`
	Message        string           `json:"message" gorm:"not null"`
	Goals          string           `json:"goals"`
	Status         MentorshipStatus `json:"status" gorm:"size:20;not null;default:pending"`
	MentorResponse string           `json:"mentor_response"`
	RespondedAt    *time.Time       `json:"responded_at"`
	StartedAt      *time.Time       `json:"started_at"`
	CompletedAt    *time.Time       `json:"completed_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// HasParticipant reports whether userID is the mentor or the mentee.
func (r *MentorshipRequest) HasParticipant(userID uint) bool {
	return r.MenteeID == userID || r.MentorID == userID
}

type SessionType string

const (
	SessionVideoCall SessionType = "video_call"
	SessionPhoneCall SessionType = "phone_call"
	SessionInPerson  SessionType = "in_person"
	SessionChat      SessionType = "chat"
)

type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionScheduled:  {SessionInProgress, SessionCancelled},
	SessionInProgress: {SessionCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type MentorshipSession struct {
	ID                    uint          `json:"id" gorm:"primaryKey"`
	MentorshipID          uint          `json:"mentorship_id" gorm:"not null;index"`
	Title                 string        `json:"title" gorm:"size:200;not null"`
	Description           string        `json:"description"`
	SessionType           SessionType   `json:"session_type" gorm:"size:20;not null"`
	ScheduledAt           time.Time     `json:"scheduled_at"`
	DurationMinutes       int           `json:"duration_minutes" gorm:"not null;default:60"`
	MeetingLink           string        `json:"meeting_link"`
	Status                SessionStatus `json:"status" gorm:"size:20;not null;default:scheduled"`
	StartedAt             *time.Time    `json:"started_at"`
	EndedAt               *time.Time    `json:"ended_at"`
	ActualDurationMinutes *int          `json:"actual_duration_minutes"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}
