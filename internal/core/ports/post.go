package ports

import (
	"context"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// ListPostsFilter carries the query parameters for listing posts. Without
// FeedAuthors only public posts are returned; with it, non-private posts of
// those authors are included as well.
type ListPostsFilter struct {
	AuthorID    uint
	PostType    string
	FeedAuthors []uint
	Limit       int
	Offset      int
}

// PostRepository defines persistence operations for the engagement ledger.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)

	FindLike(ctx context.Context, postID, userID uint) (*domain.PostLike, error)
	// InsertLike returns created=false if the pair already has a like.
	InsertLike(ctx context.Context, like *domain.PostLike) (created bool, err error)
	// DeleteLike returns deleted=false if there was nothing to delete.
	DeleteLike(ctx context.Context, postID, userID uint) (deleted bool, err error)
	InsertBookmark(ctx context.Context, b *domain.PostBookmark) (created bool, err error)
	DeleteBookmark(ctx context.Context, postID, userID uint) (deleted bool, err error)
	ListBookmarks(ctx context.Context, userID uint) ([]*domain.PostBookmark, error)
	FindComment(ctx context.Context, id uint) (*domain.PostComment, error)
	InsertComment(ctx context.Context, c *domain.PostComment) error
	UpdateComment(ctx context.Context, id uint, content string) error
	// DeleteCommentThread removes a comment and every reply below it and
	// returns how many rows went.
	DeleteCommentThread(ctx context.Context, id uint) (int64, error)
	ListComments(ctx context.Context, postID uint) ([]*domain.PostComment, error)
	InsertShare(ctx context.Context, s *domain.PostShare) error

	// AdjustCounter adds delta to one of likes_count, comments_count or
	// shares_count, flooring at zero, and returns the new value.
	AdjustCounter(ctx context.Context, postID uint, column string, delta int64) (int64, error)
}

const (
	CounterLikes    = "likes_count"
	CounterComments = "comments_count"
	CounterShares   = "shares_count"
)

type CreatePostInput struct {
	Content    string
	PostType   domain.PostType
	Visibility domain.PostVisibility
}

type UpdatePostInput struct {
	Content    *string
	PostType   *domain.PostType
	Visibility *domain.PostVisibility
}

type ShareInput struct {
	ShareType domain.ShareType
	Platform  string
}

type PostService interface {
	Create(ctx context.Context, actor domain.Actor, in CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id uint) (*domain.Post, error)
	Update(ctx context.Context, actor domain.Actor, id uint, in UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.Actor, id uint) error
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	Feed(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Post, int64, error)
	ToggleLike(ctx context.Context, actor domain.Actor, postID uint, reaction domain.ReactionType) (*domain.LikeResult, error)
	ToggleBookmark(ctx context.Context, actor domain.Actor, postID uint) (*domain.BookmarkResult, error)
	AddComment(ctx context.Context, actor domain.Actor, postID uint, content string, parentID *uint) (*domain.CommentResult, error)
	ListComments(ctx context.Context, postID uint) ([]*domain.PostComment, error)
	UpdateComment(ctx context.Context, actor domain.Actor, commentID uint, content string) (*domain.PostComment, error)
	DeleteComment(ctx context.Context, actor domain.Actor, commentID uint) (*domain.CommentResult, error)
	AddShare(ctx context.Context, actor domain.Actor, postID uint, in ShareInput) (*domain.ShareResult, error)
	Bookmarks(ctx context.Context, actor domain.Actor) ([]*domain.PostBookmark, error)
}
