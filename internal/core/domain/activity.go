package domain

import "time"

type ActivityType string

const (
	ActivityLogin               ActivityType = "login"
	ActivityProfileUpdated      ActivityType = "profile_updated"
	ActivityConnectionRequested ActivityType = "connection_requested"
	ActivityConnectionAccepted  ActivityType = "connection_accepted"
	ActivityClubJoined          ActivityType = "club_joined"
	ActivityClubLeft            ActivityType = "club_left"
	ActivityEventCreated        ActivityType = "event_created"
	ActivityPostCreated         ActivityType = "post_created"
	ActivityPostLiked           ActivityType = "post_liked"
	ActivityCommentCreated      ActivityType = "comment_created"
	ActivityProjectCreated      ActivityType = "project_created"
	ActivityProjectFunded       ActivityType = "project_funded"
	ActivityMentorshipRequested ActivityType = "mentorship_requested"
)

// Activity is one entry of a user's audit trail.
type Activity struct {
	UserID       uint           `json:"user_id" bson:"user_id"`
	ActivityType ActivityType   `json:"activity_type" bson:"activity_type"`
	Description  string         `json:"description" bson:"description"`
	Metadata     map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}
