package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var postCounters = map[string]struct{}{
	ports.CounterLikes:    {},
	ports.CounterComments: {},
	ports.CounterShares:   {},
}

// PostRepository implements ports.PostRepository using gorm.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *gorm.DB) ports.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var p domain.Post
	if err := conn(ctx, r.db).Preload("Author").First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrPostNotFound, "find post")
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes the post with its likes, bookmarks, comments and shares.
func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	for _, child := range []any{&domain.PostLike{}, &domain.PostBookmark{}, &domain.PostComment{}, &domain.PostShare{}} {
		if err := db.Where("post_id = ?", id).Delete(child).Error; err != nil {
			return fmt.Errorf("delete post children: %w", err)
		}
	}
	res := db.Delete(&domain.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.Post{})
		if len(filter.FeedAuthors) > 0 {
			q = q.Where("visibility = ? OR (author_id IN ? AND visibility <> ?)",
				domain.VisibilityPublic, filter.FeedAuthors, domain.VisibilityPrivate)
		} else {
			q = q.Where("visibility = ?", domain.VisibilityPublic)
		}
		if filter.AuthorID != 0 {
			q = q.Where("author_id = ?", filter.AuthorID)
		}
		if filter.PostType != "" {
			q = q.Where("post_type = ?", filter.PostType)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var posts []*domain.Post
	err := query().Preload("Author").
		Order("is_pinned DESC, created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) FindLike(ctx context.Context, postID, userID uint) (*domain.PostLike, error) {
	var l domain.PostLike
	err := conn(ctx, r.db).Where("post_id = ? AND user_id = ?", postID, userID).Take(&l).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound, "find like")
	}
	return &l, nil
}

func (r *PostRepository) InsertLike(ctx context.Context, like *domain.PostLike) (bool, error) {
	res := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, fmt.Errorf("insert like: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PostRepository) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	res := conn(ctx, r.db).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&domain.PostLike{})
	if res.Error != nil {
		return false, fmt.Errorf("delete like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostRepository) InsertBookmark(ctx context.Context, b *domain.PostBookmark) (bool, error) {
	res := conn(ctx, r.db).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(b)
	if res.Error != nil {
		return false, fmt.Errorf("insert bookmark: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PostRepository) DeleteBookmark(ctx context.Context, postID, userID uint) (bool, error) {
	res := conn(ctx, r.db).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&domain.PostBookmark{})
	if res.Error != nil {
		return false, fmt.Errorf("delete bookmark: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostRepository) ListBookmarks(ctx context.Context, userID uint) ([]*domain.PostBookmark, error) {
	var out []*domain.PostBookmark
	err := conn(ctx, r.db).Preload("Post").Preload("Post.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return out, nil
}

func (r *PostRepository) FindComment(ctx context.Context, id uint) (*domain.PostComment, error) {
	var c domain.PostComment
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCommentNotFound, "find comment")
	}
	return &c, nil
}

func (r *PostRepository) InsertComment(ctx context.Context, c *domain.PostComment) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *PostRepository) UpdateComment(ctx context.Context, id uint, content string) error {
	res := conn(ctx, r.db).Model(&domain.PostComment{}).Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *PostRepository) DeleteCommentThread(ctx context.Context, id uint) (int64, error) {
	db := conn(ctx, r.db)
	ids := []uint{id}
	for frontier := ids; len(frontier) > 0; {
		var replies []uint
		if err := db.Model(&domain.PostComment{}).Where("parent_id IN ?", frontier).Pluck("id", &replies).Error; err != nil {
			return 0, fmt.Errorf("collect replies: %w", err)
		}
		ids = append(ids, replies...)
		frontier = replies
	}

	res := db.Where("id IN ?", ids).Delete(&domain.PostComment{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete comments: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrCommentNotFound
	}
	return res.RowsAffected, nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID uint) ([]*domain.PostComment, error) {
	var out []*domain.PostComment
	err := conn(ctx, r.db).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return out, nil
}

func (r *PostRepository) InsertShare(ctx context.Context, s *domain.PostShare) error {
	if err := conn(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

func (r *PostRepository) AdjustCounter(ctx context.Context, postID uint, column string, delta int64) (int64, error) {
	if _, ok := postCounters[column]; !ok {
		return 0, fmt.Errorf("adjust post counter: unknown column %q", column)
	}
	db := conn(ctx, r.db)
	res := db.Model(&domain.Post{}).Where("id = ?", postID).UpdateColumn(column, adjustExpr(column, delta))
	if res.Error != nil {
		return 0, fmt.Errorf("adjust %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrPostNotFound
	}
	var n int64
	if err := db.Model(&domain.Post{}).Where("id = ?", postID).Select(column).Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("read %s: %w", column, err)
	}
	return n, nil
}
