package domain

import "time"

type PostType string

const (
	PostGeneral        PostType = "general"
	PostAchievement    PostType = "achievement"
	PostProject        PostType = "project"
	PostResearch       PostType = "research"
	PostJobOpportunity PostType = "job_opportunity"
	PostEvent          PostType = "event"
	PostMentorship     PostType = "mentorship"
)

type PostVisibility string

const (
	VisibilityPublic      PostVisibility = "public"
	VisibilityConnections PostVisibility = "connections"
	VisibilityDepartment  PostVisibility = "department"
	VisibilityPrivate     PostVisibility = "private"
)

// Post is a feed entry. The three counters are owned by the post and move
// in the same transaction as the like, comment or share row behind them.
type Post struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	AuthorID      uint           `json:"author_id" gorm:"not null;index"`
	Author        *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content       string         `json:"content" gorm:"not null"`
	PostType      PostType       `json:"post_type" gorm:"size:20;not null;default:general"`
	Visibility    PostVisibility `json:"visibility" gorm:"size:20;not null;default:public;index"`
	LikesCount    int64          `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int64          `json:"comments_count" gorm:"not null;default:0"`
	SharesCount   int64          `json:"shares_count" gorm:"not null;default:0"`
	IsPinned      bool           `json:"is_pinned"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

type PostLike struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	PostID       uint         `json:"post_id" gorm:"not null;uniqueIndex:idx_post_like"`
	UserID       uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_post_like"`
	ReactionType ReactionType `json:"reaction_type" gorm:"size:10;not null;default:like"`
	CreatedAt    time.Time    `json:"created_at"`
}

type PostBookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_bookmark"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_bookmark;index"`
	Post      *Post     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	CreatedAt time.Time `json:"created_at"`
}

// PostComment belongs to a post and optionally replies to another comment
// of the same post.
type PostComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentID  *uint     `json:"parent_id"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShareType string

const (
	ShareInternal ShareType = "internal"
	ShareExternal ShareType = "external"
	ShareSocial   ShareType = "social"
)

// PostShare is recorded for every share; repeats are allowed.
type PostShare struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	ShareType ShareType `json:"share_type" gorm:"size:20;not null;default:internal"`
	Platform  string    `json:"platform" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeResult is the post-toggle state of a like.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

type ShareResult struct {
	Share       *PostShare `json:"share"`
	SharesCount int64      `json:"shares_count"`
}

type CommentResult struct {
	Comment       *PostComment `json:"comment"`
	CommentsCount int64        `json:"comments_count"`
}
