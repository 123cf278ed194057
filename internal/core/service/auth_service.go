package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const minPasswordLength = 8

// selfServiceTypes are the account types open to public registration.
var selfServiceTypes = map[domain.UserType]bool{
	domain.UserTypeStudent:   true,
	domain.UserTypeAlumni:    true,
	domain.UserTypeFaculty:   true,
	domain.UserTypeRecruiter: true,
}

// AuthService implements registration, login and password changes.
type AuthService struct {
	users     ports.UserRepository
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, activity: activity, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !selfServiceTypes[in.UserType] {
		return nil, domain.NewFieldError("user_type", "must be one of student, alumni, faculty, recruiter")
	}
	return s.create(ctx, in, domain.UserStatusPending)
}

// CreateAdmin bootstraps an active admin account. It is not reachable over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.UserType = domain.UserTypeAdmin
	return s.create(ctx, in, domain.UserStatusActive)
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput, status domain.UserStatus) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:           in.Username,
		Email:              in.Email,
		PasswordHash:       string(hash),
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		UserType:           in.UserType,
		Status:             status,
		EmailNotifications: true,
		PushNotifications:  true,
		LastActive:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("user_type", string(user.UserType)).Msg("user registered")
	return user, nil
}

func validateRegistration(in ports.RegisterInput) error {
	fields := map[string]string{}
	if in.Username == "" {
		fields["username"] = "username is required"
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status == domain.UserStatusSuspended {
		return nil, domain.ErrAccountSuspended
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastActive(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to update last_active")
	}
	user.LastActive = now

	if s.activity != nil {
		s.activity.Record(domain.Activity{
			UserID:       user.ID,
			ActivityType: domain.ActivityLogin,
			Description:  "logged in",
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
			CreatedAt:    now,
		})
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Actor, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.NewFieldError("new_password", "password must be at least 8 characters")
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, user.ID, map[string]any{
		"password_hash": string(hash),
		"updated_at":    time.Now().UTC(),
	})
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(user.ID), 10),
		"username":  user.Username,
		"user_type": string(user.UserType),
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
