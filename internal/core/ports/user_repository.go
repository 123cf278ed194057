package ports

import (
	"context"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// ListUsersFilter carries the query parameters for the member directory.
type ListUsersFilter struct {
	Search         string // partial match on username, names or company
	Status         string // defaults to active
	UserType       string
	Department     string
	GraduationYear int
	Limit          int
	Offset         int
}

// UserRepository defines persistence operations for users and interests.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether either identifier is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Update writes the given columns only.
	Update(ctx context.Context, id uint, fields map[string]any) error
	TouchLastActive(ctx context.Context, id uint, at time.Time) error
	Stats(ctx context.Context, id uint) (*domain.UserStats, error)

	ListInterests(ctx context.Context) ([]*domain.Interest, error)
	ReplaceInterests(ctx context.Context, userID uint, interests []domain.UserInterest) error
	ListUserInterests(ctx context.Context, userID uint) ([]*domain.UserInterest, error)
}
