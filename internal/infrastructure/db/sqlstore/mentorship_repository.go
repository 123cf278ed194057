package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var profileCounters = map[string]struct{}{
	ports.CounterTotalMentees:  {},
	ports.CounterTotalSessions: {},
}

// MentorshipRepository implements ports.MentorshipRepository using gorm.
type MentorshipRepository struct {
	db *gorm.DB
}

// NewMentorshipRepository creates a new MentorshipRepository.
func NewMentorshipRepository(db *gorm.DB) ports.MentorshipRepository {
	return &MentorshipRepository{db: db}
}

func (r *MentorshipRepository) FindProfileByUser(ctx context.Context, userID uint) (*domain.MentorProfile, error) {
	var p domain.MentorProfile
	if err := conn(ctx, r.db).Preload("User").Where("user_id = ?", userID).Take(&p).Error; err != nil {
		return nil, notFound(err, domain.ErrMentorNotFound, "find mentor profile")
	}
	return &p, nil
}

// SaveProfile inserts or fully updates the profile. Counters are left alone.
func (r *MentorshipRepository) SaveProfile(ctx context.Context, p *domain.MentorProfile) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bio",
			"expertise_areas",
			"years_of_experience",
			"current_company",
			"current_position",
			"availability",
			"max_mentees",
			"timezone",
			"is_active",
			"updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("save mentor profile: %w", err)
	}
	return nil
}

func (r *MentorshipRepository) ListProfiles(
	ctx context.Context,
	filter ports.ListMentorsFilter,
) ([]*domain.MentorProfile, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.MentorProfile{}).Where("is_active = ?", true)
		if filter.Availability != "" {
			q = q.Where("availability = ?", filter.Availability)
		}
		if filter.Expertise != "" {
			q = q.Where("LOWER(expertise_areas) LIKE ?", "%"+strings.ToLower(filter.Expertise)+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count mentors: %w", err)
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var out []*domain.MentorProfile
	err := query().Preload("User").
		Order("CASE WHEN availability = '" + string(domain.AvailabilityAvailable) + "' THEN 0 ELSE 1 END").
		Order("total_mentees DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list mentors: %w", err)
	}
	return out, total, nil
}

func (r *MentorshipRepository) AdjustProfileCounter(ctx context.Context, userID uint, column string, delta int64) error {
	if _, ok := profileCounters[column]; !ok {
		return fmt.Errorf("adjust mentor counter: unknown column %q", column)
	}
	res := conn(ctx, r.db).Model(&domain.MentorProfile{}).Where("user_id = ?", userID).
		UpdateColumn(column, adjustExpr(column, delta))
	if res.Error != nil {
		return fmt.Errorf("adjust %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMentorNotFound
	}
	return nil
}

// CreateRequest relies on the partial unique index over open requests, so a
// concurrent duplicate fails with domain.ErrDuplicateMentorship.
func (r *MentorshipRepository) CreateRequest(ctx context.Context, req *domain.MentorshipRequest) error {
	err := conn(ctx, r.db).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateMentorship
	}
	if err != nil {
		return fmt.Errorf("create mentorship request: %w", err)
	}
	return nil
}

func (r *MentorshipRepository) FindRequest(ctx context.Context, id uint) (*domain.MentorshipRequest, error) {
	var req domain.MentorshipRequest
	if err := conn(ctx, r.db).First(&req, id).Error; err != nil {
		return nil, notFound(err, domain.ErrMentorshipNotFound, "find mentorship request")
	}
	return &req, nil
}

func (r *MentorshipRepository) FindRequestForUpdate(ctx context.Context, id uint) (*domain.MentorshipRequest, error) {
	var req domain.MentorshipRequest
	if err := forUpdate(conn(ctx, r.db)).First(&req, id).Error; err != nil {
		return nil, notFound(err, domain.ErrMentorshipNotFound, "lock mentorship request")
	}
	return &req, nil
}

func (r *MentorshipRepository) HasOpenRequest(ctx context.Context, menteeID, mentorID uint) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&domain.MentorshipRequest{}).
		Where("mentee_id = ? AND mentor_id = ? AND status IN ?", menteeID, mentorID,
			[]domain.MentorshipStatus{domain.MentorshipPending, domain.MentorshipAccepted}).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check open mentorship: %w", err)
	}
	return n > 0, nil
}

func (r *MentorshipRepository) UpdateRequest(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.MentorshipRequest{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update mentorship request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMentorshipNotFound
	}
	return nil
}

func (r *MentorshipRepository) ListRequests(ctx context.Context, userID uint, asMentor bool) ([]*domain.MentorshipRequest, error) {
	column := "mentee_id"
	if asMentor {
		column = "mentor_id"
	}
	var out []*domain.MentorshipRequest
	if err := conn(ctx, r.db).Where(column+" = ?", userID).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list mentorship requests: %w", err)
	}
	return out, nil
}

func (r *MentorshipRepository) CreateSession(ctx context.Context, s *domain.MentorshipSession) error {
	if err := conn(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *MentorshipRepository) FindSessionForUpdate(ctx context.Context, id uint) (*domain.MentorshipSession, error) {
	var s domain.MentorshipSession
	if err := forUpdate(conn(ctx, r.db)).First(&s, id).Error; err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound, "lock session")
	}
	return &s, nil
}

func (r *MentorshipRepository) UpdateSession(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.MentorshipSession{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *MentorshipRepository) ListSessions(ctx context.Context, mentorshipID uint) ([]*domain.MentorshipSession, error) {
	var out []*domain.MentorshipSession
	err := conn(ctx, r.db).Where("mentorship_id = ?", mentorshipID).Order("scheduled_at ASC, id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}
