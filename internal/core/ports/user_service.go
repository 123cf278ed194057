package ports

import (
	"context"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  domain.UserType
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *domain.User
}

// RequestMeta describes the inbound request for the activity log.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string, meta RequestMeta) (*LoginResult, error)
	ChangePassword(ctx context.Context, actor domain.Actor, oldPassword, newPassword string) error
}

// ProfilePatch holds the optional profile fields; nil means unchanged.
type ProfilePatch struct {
	FirstName          *string
	LastName           *string
	Bio                *string
	Location           *string
	PhoneNumber        *string
	LinkedinProfile    *string
	CurrentPosition    *string
	Company            *string
	GraduationYear     *int
	Department         *string
	EmailNotifications *bool
	PushNotifications  *bool
}

// InterestInput selects an interest with a proficiency level.
type InterestInput struct {
	InterestID       uint
	ProficiencyLevel int
}

type UserService interface {
	GetProfile(ctx context.Context, id uint) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, patch ProfilePatch) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Stats(ctx context.Context, id uint) (*domain.UserStats, error)
	SetStatus(ctx context.Context, actor domain.Actor, id uint, status domain.UserStatus) (*domain.User, error)
	Verify(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error)
	ListInterests(ctx context.Context) ([]*domain.Interest, error)
	SetInterests(ctx context.Context, actor domain.Actor, in []InterestInput) ([]*domain.UserInterest, error)
	ListActivity(ctx context.Context, actor domain.Actor, limit int) ([]*domain.Activity, error)
}
