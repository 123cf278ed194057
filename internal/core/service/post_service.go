package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var (
	validPostTypes = map[domain.PostType]bool{
		domain.PostGeneral:        true,
		domain.PostAchievement:    true,
		domain.PostProject:        true,
		domain.PostResearch:       true,
		domain.PostJobOpportunity: true,
		domain.PostEvent:          true,
		domain.PostMentorship:     true,
	}
	validPostVisibility = map[domain.PostVisibility]bool{
		domain.VisibilityPublic:      true,
		domain.VisibilityConnections: true,
		domain.VisibilityDepartment:  true,
		domain.VisibilityPrivate:     true,
	}
	validReactions = map[domain.ReactionType]bool{
		domain.ReactionLike:  true,
		domain.ReactionLove:  true,
		domain.ReactionLaugh: true,
		domain.ReactionWow:   true,
		domain.ReactionSad:   true,
		domain.ReactionAngry: true,
	}
	validShareTypes = map[domain.ShareType]bool{
		domain.ShareInternal: true,
		domain.ShareExternal: true,
		domain.ShareSocial:   true,
	}
)

type postService struct {
	posts       ports.PostRepository
	connections ports.ConnectionRepository
	tx          ports.Transactor
	notifier    ports.Notifier
	activity    ports.ActivityRecorder
	log         zerolog.Logger
}

// NewPostService returns a PostService implementation.
func NewPostService(
	posts ports.PostRepository,
	connections ports.ConnectionRepository,
	tx ports.Transactor,
	notifier ports.Notifier,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.PostService {
	return &postService{
		posts:       posts,
		connections: connections,
		tx:          tx,
		notifier:    notifier,
		activity:    activity,
		log:         log,
	}
}

func (s *postService) Create(ctx context.Context, actor domain.Actor, in ports.CreatePostInput) (*domain.Post, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, domain.NewFieldError("content", "content is required")
	}
	if in.PostType == "" {
		in.PostType = domain.PostGeneral
	}
	if in.Visibility == "" {
		in.Visibility = domain.VisibilityPublic
	}
	if !validPostTypes[in.PostType] {
		return nil, domain.NewFieldError("post_type", "unknown post type")
	}
	if !validPostVisibility[in.Visibility] {
		return nil, domain.NewFieldError("visibility", "unknown visibility")
	}

	p := &domain.Post{
		AuthorID:   actor.UserID,
		Content:    in.Content,
		PostType:   in.PostType,
		Visibility: in.Visibility,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	record(ctx, s.activity, actor.UserID, domain.ActivityPostCreated, "published a post", map[string]any{"post_id": p.ID})
	return p, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Update edits the author's own post.
func (s *postService) Update(ctx context.Context, actor domain.Actor, id uint, in ports.UpdatePostInput) (*domain.Post, error) {
	fields := map[string]any{}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, domain.NewFieldError("content", "content is required")
		}
		fields["content"] = content
	}
	if in.PostType != nil {
		if !validPostTypes[*in.PostType] {
			return nil, domain.NewFieldError("post_type", "unknown post type")
		}
		fields["post_type"] = *in.PostType
	}
	if in.Visibility != nil {
		if !validPostVisibility[*in.Visibility] {
			return nil, domain.NewFieldError("visibility", "unknown visibility")
		}
		fields["visibility"] = *in.Visibility
	}

	var updated *domain.Post
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		p, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p.AuthorID != actor.UserID {
			return domain.ErrForbidden
		}
		if len(fields) == 0 {
			updated = p
			return nil
		}
		fields["updated_at"] = time.Now().UTC()
		if err := s.posts.Update(ctx, id, fields); err != nil {
			return err
		}
		updated, err = s.posts.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	return inTx(ctx, s.tx, func(ctx context.Context) error {
		p, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p.AuthorID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return s.posts.Delete(ctx, id)
	})
}

func (s *postService) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	filter.FeedAuthors = nil
	return s.posts.List(ctx, filter)
}

// Feed is every public post plus the non-private posts of the actor and
// their accepted connections.
func (s *postService) Feed(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Post, int64, error) {
	ids, err := s.connections.ConnectedUserIDs(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	return s.posts.List(ctx, ports.ListPostsFilter{
		FeedAuthors: append(ids, actor.UserID),
		Limit:       limit,
		Offset:      offset,
	})
}

// ToggleLike removes the actor's like if there is one and adds it otherwise.
func (s *postService) ToggleLike(
	ctx context.Context,
	actor domain.Actor,
	postID uint,
	reaction domain.ReactionType,
) (*domain.LikeResult, error) {
	if reaction == "" {
		reaction = domain.ReactionLike
	}
	if !validReactions[reaction] {
		return nil, domain.NewFieldError("reaction_type", "unknown reaction")
	}

	var res domain.LikeResult
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}

		deleted, err := s.posts.DeleteLike(ctx, postID, actor.UserID)
		if err != nil {
			return err
		}
		if deleted {
			res.LikesCount, err = s.posts.AdjustCounter(ctx, postID, ports.CounterLikes, -1)
			return err
		}

		created, err := s.posts.InsertLike(ctx, &domain.PostLike{PostID: postID, UserID: actor.UserID, ReactionType: reaction})
		if err != nil {
			return err
		}
		res.Liked = true
		if !created {
			res.LikesCount = post.LikesCount
			return nil
		}
		if res.LikesCount, err = s.posts.AdjustCounter(ctx, postID, ports.CounterLikes, 1); err != nil {
			return err
		}
		return s.notifyAuthor(ctx, actor, post, domain.NotifyPostLiked, "New reaction",
			fmt.Sprintf("%s reacted to your post", actor.Username), domain.Ref(domain.RelatedPost, post.ID))
	})
	if err != nil {
		return nil, err
	}

	if res.Liked {
		record(ctx, s.activity, actor.UserID, domain.ActivityPostLiked, "liked a post", map[string]any{"post_id": postID})
	}
	return &res, nil
}

func (s *postService) ToggleBookmark(ctx context.Context, actor domain.Actor, postID uint) (*domain.BookmarkResult, error) {
	var res domain.BookmarkResult
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.posts.FindByID(ctx, postID); err != nil {
			return err
		}
		deleted, err := s.posts.DeleteBookmark(ctx, postID, actor.UserID)
		if err != nil || deleted {
			return err
		}
		if _, err := s.posts.InsertBookmark(ctx, &domain.PostBookmark{PostID: postID, UserID: actor.UserID}); err != nil {
			return err
		}
		res.Bookmarked = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddComment stores a comment and bumps comments_count. A parent must be a
// comment of the same post.
func (s *postService) AddComment(
	ctx context.Context,
	actor domain.Actor,
	postID uint,
	content string,
	parentID *uint,
) (*domain.CommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewFieldError("content", "content is required")
	}

	c := &domain.PostComment{PostID: postID, AuthorID: actor.UserID, ParentID: parentID, Content: content}
	var count int64
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if parentID != nil {
			parent, err := s.posts.FindComment(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent.PostID != postID {
				return domain.ErrCommentNotFound
			}
		}
		if err := s.posts.InsertComment(ctx, c); err != nil {
			return err
		}
		if count, err = s.posts.AdjustCounter(ctx, postID, ports.CounterComments, 1); err != nil {
			return err
		}
		return s.notifyAuthor(ctx, actor, post, domain.NotifyPostCommented, "New comment",
			fmt.Sprintf("%s commented on your post", actor.Username), domain.Ref(domain.RelatedComment, c.ID))
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityCommentCreated, "commented on a post",
		map[string]any{"post_id": postID, "comment_id": c.ID})
	return &domain.CommentResult{Comment: c, CommentsCount: count}, nil
}

func (s *postService) ListComments(ctx context.Context, postID uint) ([]*domain.PostComment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

// UpdateComment lets a comment's author change its text.
func (s *postService) UpdateComment(ctx context.Context, actor domain.Actor, commentID uint, content string) (*domain.PostComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewFieldError("content", "content is required")
	}

	var updated *domain.PostComment
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		c, err := s.posts.FindComment(ctx, commentID)
		if err != nil {
			return err
		}
		if c.AuthorID != actor.UserID {
			return domain.ErrForbidden
		}
		if err := s.posts.UpdateComment(ctx, commentID, content); err != nil {
			return err
		}
		updated, err = s.posts.FindComment(ctx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComment removes a comment with its replies and takes them all off
// comments_count. The comment author, the post author and admins may do it.
func (s *postService) DeleteComment(ctx context.Context, actor domain.Actor, commentID uint) (*domain.CommentResult, error) {
	var res domain.CommentResult
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		c, err := s.posts.FindComment(ctx, commentID)
		if err != nil {
			return err
		}
		post, err := s.posts.FindByID(ctx, c.PostID)
		if err != nil {
			return err
		}
		if c.AuthorID != actor.UserID && post.AuthorID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrForbidden
		}

		removed, err := s.posts.DeleteCommentThread(ctx, commentID)
		if err != nil {
			return err
		}
		res.Comment = c
		res.CommentsCount, err = s.posts.AdjustCounter(ctx, c.PostID, ports.CounterComments, -removed)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Uint("comment_id", commentID).Int64("comments_count", res.CommentsCount).Msg("comment deleted")
	return &res, nil
}

// AddShare records a share. Every share counts, repeats included.
func (s *postService) AddShare(ctx context.Context, actor domain.Actor, postID uint, in ports.ShareInput) (*domain.ShareResult, error) {
	if in.ShareType == "" {
		in.ShareType = domain.ShareInternal
	}
	if !validShareTypes[in.ShareType] {
		return nil, domain.NewFieldError("share_type", "share type must be internal, external or social")
	}

	share := &domain.PostShare{PostID: postID, UserID: actor.UserID, ShareType: in.ShareType, Platform: in.Platform}
	var count int64
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := s.posts.InsertShare(ctx, share); err != nil {
			return err
		}
		if count, err = s.posts.AdjustCounter(ctx, postID, ports.CounterShares, 1); err != nil {
			return err
		}
		return s.notifyAuthor(ctx, actor, post, domain.NotifyPostShared, "Post shared",
			fmt.Sprintf("%s shared your post", actor.Username), domain.Ref(domain.RelatedPost, post.ID))
	})
	if err != nil {
		return nil, err
	}
	return &domain.ShareResult{Share: share, SharesCount: count}, nil
}

func (s *postService) Bookmarks(ctx context.Context, actor domain.Actor) ([]*domain.PostBookmark, error) {
	return s.posts.ListBookmarks(ctx, actor.UserID)
}

// notifyAuthor tells the post author about someone else's interaction.
func (s *postService) notifyAuthor(
	ctx context.Context,
	actor domain.Actor,
	post *domain.Post,
	kind domain.NotificationType,
	title, message string,
	related domain.RelatedRef,
) error {
	if post.AuthorID == actor.UserID {
		return nil
	}
	_, err := s.notifier.Notify(ctx, domain.NotificationInput{
		UserID:   post.AuthorID,
		Type:     kind,
		Title:    title,
		Message:  message,
		Priority: domain.PriorityLow,
		Related:  related,
	})
	return err
}
