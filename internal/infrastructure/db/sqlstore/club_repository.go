package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// ClubRepository implements ports.ClubRepository using gorm.
type ClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new ClubRepository.
func NewClubRepository(db *gorm.DB) ports.ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) error {
	if err := conn(ctx, r.db).Create(club).Error; err != nil {
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint) (*domain.Club, error) {
	var c domain.Club
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrClubNotFound, "find club")
	}
	return &c, nil
}

func (r *ClubRepository) List(ctx context.Context, filter ports.ListClubsFilter) ([]*domain.Club, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.Club{}).Where("status = ?", domain.ClubActive)
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count clubs: %w", err)
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var clubs []*domain.Club
	if err := query().Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&clubs).Error; err != nil {
		return nil, 0, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, total, nil
}

func (r *ClubRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	fields = maps.Clone(fields)
	// map updates skip the json serializer
	if tags, ok := fields["tags"].([]string); ok {
		raw, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		fields["tags"] = string(raw)
	}
	res := conn(ctx, r.db).Model(&domain.Club{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update club: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClubNotFound
	}
	return nil
}

func (r *ClubRepository) FindMembership(ctx context.Context, clubID, userID uint) (*domain.Membership, error) {
	var m domain.Membership
	err := conn(ctx, r.db).Where("club_id = ? AND user_id = ?", clubID, userID).Take(&m).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotAMember, "find membership")
	}
	return &m, nil
}

func (r *ClubRepository) InsertMembershipIfAbsent(ctx context.Context, m *domain.Membership) (bool, error) {
	res := conn(ctx, r.db).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, fmt.Errorf("insert membership: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ClubRepository) DeleteMembership(ctx context.Context, clubID, userID uint) (*domain.Membership, error) {
	db := conn(ctx, r.db)
	m, err := r.FindMembership(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	// A concurrent leave may have removed the row between the read and here.
	res := db.Where("id = ?", m.ID).Delete(&domain.Membership{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotAMember
	}
	return m, nil
}

func (r *ClubRepository) AdjustMembersCount(ctx context.Context, clubID uint, delta int64) (int64, error) {
	db := conn(ctx, r.db)
	res := db.Model(&domain.Club{}).Where("id = ?", clubID).
		UpdateColumn("members_count", adjustExpr("members_count", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("adjust members_count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrClubNotFound
	}
	var count int64
	if err := db.Model(&domain.Club{}).Where("id = ?", clubID).Select("members_count").Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("read members_count: %w", err)
	}
	return count, nil
}

func (r *ClubRepository) ListMembers(ctx context.Context, clubID uint) ([]*domain.Membership, error) {
	var out []*domain.Membership
	err := conn(ctx, r.db).Preload("User").
		Where("club_id = ? AND status = ?", clubID, domain.MembershipActive).
		Order("joined_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

func (r *ClubRepository) ListUserMemberships(ctx context.Context, userID uint) ([]*domain.Membership, error) {
	var out []*domain.Membership
	err := conn(ctx, r.db).Preload("Club").
		Where("user_id = ? AND status = ?", userID, domain.MembershipActive).
		Order("joined_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list user clubs: %w", err)
	}
	return out, nil
}

func (r *ClubRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	for _, child := range []any{&domain.Membership{}, &domain.ClubPost{}, &domain.ClubEvent{}} {
		if err := db.Where("club_id = ?", id).Delete(child).Error; err != nil {
			return fmt.Errorf("delete club children: %w", err)
		}
	}
	res := db.Delete(&domain.Club{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete club: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClubNotFound
	}
	return nil
}

func (r *ClubRepository) InsertPost(ctx context.Context, p *domain.ClubPost) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("insert club post: %w", err)
	}
	return nil
}

func (r *ClubRepository) ListPosts(ctx context.Context, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error) {
	query := func() *gorm.DB {
		return conn(ctx, r.db).Model(&domain.ClubPost{}).Where("club_id = ?", clubID)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count club posts: %w", err)
	}
	limit, offset = pageBounds(limit, offset)
	var posts []*domain.ClubPost
	err := query().Preload("Author").
		Order("is_pinned DESC, created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list club posts: %w", err)
	}
	return posts, total, nil
}

func (r *ClubRepository) AdjustPostsCount(ctx context.Context, clubID uint, delta int64) (int64, error) {
	db := conn(ctx, r.db)
	res := db.Model(&domain.Club{}).Where("id = ?", clubID).
		UpdateColumn("posts_count", adjustExpr("posts_count", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("adjust posts_count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrClubNotFound
	}
	var count int64
	if err := db.Model(&domain.Club{}).Where("id = ?", clubID).Select("posts_count").Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("read posts_count: %w", err)
	}
	return count, nil
}

func (r *ClubRepository) InsertEvent(ctx context.Context, e *domain.ClubEvent) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(e).Error; err != nil {
		return fmt.Errorf("insert club event: %w", err)
	}
	return nil
}

func (r *ClubRepository) FindEvent(ctx context.Context, id uint) (*domain.ClubEvent, error) {
	var e domain.ClubEvent
	if err := conn(ctx, r.db).Preload("Organizer").First(&e, id).Error; err != nil {
		return nil, notFound(err, domain.ErrEventNotFound, "find club event")
	}
	return &e, nil
}

func (r *ClubRepository) ListEvents(ctx context.Context, clubID uint, listedOnly bool) ([]*domain.ClubEvent, error) {
	q := conn(ctx, r.db).Preload("Organizer").Where("club_id = ?", clubID)
	if listedOnly {
		q = q.Where("is_public = ? AND status <> ?", true, domain.EventDraft)
	}
	var out []*domain.ClubEvent
	if err := q.Order("start_date ASC, id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list club events: %w", err)
	}
	return out, nil
}

func (r *ClubRepository) UpdateEvent(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.ClubEvent{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update club event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *ClubRepository) DeleteEvent(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&domain.ClubEvent{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete club event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
