package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const defaultActivityLimit = 50

var validUserStatuses = map[domain.UserStatus]bool{
	domain.UserStatusActive:      true,
	domain.UserStatusPending:     true,
	domain.UserStatusSuspended:   true,
	domain.UserStatusUnderReview: true,
}

type userService struct {
	users      ports.UserRepository
	activities ports.ActivityRepository
	tx         ports.Transactor
	activity   ports.ActivityRecorder
	log        zerolog.Logger
}

// NewUserService returns a UserService implementation. activities may be nil
// when the activity log is disabled.
func NewUserService(
	users ports.UserRepository,
	activities ports.ActivityRepository,
	tx ports.Transactor,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.UserService {
	return &userService{users: users, activities: activities, tx: tx, activity: activity, log: log}
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, actor domain.Actor, patch ports.ProfilePatch) (*domain.User, error) {
	fields := profileFields(patch)
	if len(fields) == 0 {
		return s.users.FindByID(ctx, actor.UserID)
	}
	if patch.GraduationYear != nil && (*patch.GraduationYear < 1900 || *patch.GraduationYear > time.Now().Year()+10) {
		return nil, domain.NewFieldError("graduation_year", "graduation year is out of range")
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.users.Update(ctx, actor.UserID, fields); err != nil {
		return nil, err
	}
	record(ctx, s.activity, actor.UserID, domain.ActivityProfileUpdated, "updated profile", nil)
	return s.users.FindByID(ctx, actor.UserID)
}

func profileFields(p ports.ProfilePatch) map[string]any {
	fields := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("first_name", p.FirstName)
	set("last_name", p.LastName)
	set("bio", p.Bio)
	set("location", p.Location)
	set("phone_number", p.PhoneNumber)
	set("linkedin_profile", p.LinkedinProfile)
	set("current_position", p.CurrentPosition)
	set("company", p.Company)
	set("department", p.Department)
	if p.GraduationYear != nil {
		fields["graduation_year"] = *p.GraduationYear
	}
	if p.EmailNotifications != nil {
		fields["email_notifications"] = *p.EmailNotifications
	}
	if p.PushNotifications != nil {
		fields["push_notifications"] = *p.PushNotifications
	}
	return fields
}

func (s *userService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	filter.Status = string(domain.UserStatusActive)
	return s.users.List(ctx, filter)
}

func (s *userService) Stats(ctx context.Context, id uint) (*domain.UserStats, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.users.Stats(ctx, id)
}

func (s *userService) SetStatus(ctx context.Context, actor domain.Actor, id uint, status domain.UserStatus) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !validUserStatuses[status] {
		return nil, domain.NewFieldError("status", "unknown user status")
	}
	if err := s.users.Update(ctx, id, map[string]any{"status": status, "updated_at": time.Now().UTC()}); err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", id).Str("status", string(status)).Uint("admin_id", actor.UserID).Msg("user status changed")
	return s.users.FindByID(ctx, id)
}

func (s *userService) Verify(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	now := time.Now().UTC()
	err := s.users.Update(ctx, id, map[string]any{
		"is_verified": true,
		"verified_at": now,
		"verified_by": actor.UserID,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *userService) ListInterests(ctx context.Context) ([]*domain.Interest, error) {
	return s.users.ListInterests(ctx)
}

func (s *userService) SetInterests(ctx context.Context, actor domain.Actor, in []ports.InterestInput) ([]*domain.UserInterest, error) {
	seen := make(map[uint]bool, len(in))
	rows := make([]domain.UserInterest, 0, len(in))
	for _, i := range in {
		if i.ProficiencyLevel < 1 || i.ProficiencyLevel > 5 {
			return nil, domain.NewFieldError("proficiency_level", "proficiency must be between 1 and 5")
		}
		if seen[i.InterestID] {
			continue
		}
		seen[i.InterestID] = true
		rows = append(rows, domain.UserInterest{InterestID: i.InterestID, ProficiencyLevel: i.ProficiencyLevel})
	}

	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		return s.users.ReplaceInterests(ctx, actor.UserID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.users.ListUserInterests(ctx, actor.UserID)
}

func (s *userService) ListActivity(ctx context.Context, actor domain.Actor, limit int) ([]*domain.Activity, error) {
	if s.activities == nil {
		return []*domain.Activity{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = defaultActivityLimit
	}
	return s.activities.ListByUser(ctx, actor.UserID, limit)
}
