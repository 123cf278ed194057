package domain

import "time"

// Dashboard is the per-user analytics view.
type Dashboard struct {
	Connections         int64 `json:"connections"`
	PendingRequests     int64 `json:"pending_requests"`
	Posts               int64 `json:"posts"`
	LikesReceived       int64 `json:"likes_received"`
	Clubs               int64 `json:"clubs"`
	ProjectsCreated     int64 `json:"projects_created"`
	AmountContributed   Money `json:"amount_contributed"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// PlatformSummary counts rows across every store.
type PlatformSummary struct {
	Users            int64            `json:"users"`
	UsersByType      map[string]int64 `json:"users_by_type"`
	Connections      int64            `json:"connections"`
	Clubs            int64            `json:"clubs"`
	Memberships      int64            `json:"memberships"`
	Posts            int64            `json:"posts"`
	Projects         int64            `json:"projects"`
	ProjectsByStatus map[string]int64 `json:"projects_by_status"`
	TotalRaised      Money            `json:"total_raised"`
	Mentorships      int64            `json:"mentorships"`
	Notifications    int64            `json:"notifications"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// PostEngagement ranks a post by interactions in a window.
type PostEngagement struct {
	PostID        uint  `json:"post_id"`
	AuthorID      uint  `json:"author_id"`
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	SharesCount   int64 `json:"shares_count"`
	Score         int64 `json:"score"`
}
