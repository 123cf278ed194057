package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// UserRepository implements ports.UserRepository using gorm.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := conn(ctx, r.db).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := conn(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound, "find user")
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := conn(ctx, r.db).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound, "find user by username")
	}
	return &u, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&domain.User{}).
		Where("username = ? OR email = ?", username, strings.ToLower(email)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.User{})
		status := filter.Status
		if status == "" {
			status = string(domain.UserStatusActive)
		}
		q = q.Where("status = ?", status)
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			q = q.Where(
				"LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(company) LIKE ?",
				like, like, like, like,
			)
		}
		if filter.UserType != "" {
			q = q.Where("user_type = ?", filter.UserType)
		}
		if filter.Department != "" {
			q = q.Where("department = ?", filter.Department)
		}
		if filter.GraduationYear != 0 {
			q = q.Where("graduation_year = ?", filter.GraduationYear)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var users []*domain.User
	if err := query().Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastActive(ctx context.Context, id uint, at time.Time) error {
	return conn(ctx, r.db).Model(&domain.User{}).Where("id = ?", id).UpdateColumn("last_active", at).Error
}

func (r *UserRepository) Stats(ctx context.Context, id uint) (*domain.UserStats, error) {
	db := conn(ctx, r.db)
	var s domain.UserStats

	err := runCounts(db, []countQuery{
		{&s.Connections, &domain.Connection{}, "status = ? AND (from_user_id = ? OR to_user_id = ?)", []any{domain.ConnectionAccepted, id, id}},
		{&s.Posts, &domain.Post{}, "author_id = ?", []any{id}},
		{&s.Clubs, &domain.Membership{}, "user_id = ? AND status = ?", []any{id, domain.MembershipActive}},
		{&s.Projects, &domain.Project{}, "creator_id = ?", []any{id}},
		{&s.Contributions, &domain.Contribution{}, "contributor_id = ?", []any{id}},
	})
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &s, nil
}

func (r *UserRepository) ListInterests(ctx context.Context) ([]*domain.Interest, error) {
	var out []*domain.Interest
	if err := conn(ctx, r.db).Order("category ASC, name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return out, nil
}

// ReplaceInterests swaps the user's interest set. Callers run it inside a
// transaction.
func (r *UserRepository) ReplaceInterests(ctx context.Context, userID uint, interests []domain.UserInterest) error {
	db := conn(ctx, r.db)
	if err := db.Where("user_id = ?", userID).Delete(&domain.UserInterest{}).Error; err != nil {
		return fmt.Errorf("clear interests: %w", err)
	}
	if len(interests) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(interests))
	for i := range interests {
		interests[i].UserID = userID
		ids = append(ids, interests[i].InterestID)
	}
	var known int64
	if err := db.Model(&domain.Interest{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
		return fmt.Errorf("check interests: %w", err)
	}
	if known != int64(len(ids)) {
		return domain.ErrInterestNotFound
	}
	if err := db.Omit("Interest").Create(&interests).Error; err != nil {
		return fmt.Errorf("insert interests: %w", err)
	}
	return nil
}

func (r *UserRepository) ListUserInterests(ctx context.Context, userID uint) ([]*domain.UserInterest, error) {
	var out []*domain.UserInterest
	err := conn(ctx, r.db).Preload("Interest").Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list user interests: %w", err)
	}
	return out, nil
}
