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

// ProjectRepository implements ports.ProjectRepository using gorm.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *gorm.DB) ports.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	if err := conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProjectNotFound, "find project")
	}
	return &p, nil
}

func (r *ProjectRepository) FindForUpdate(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	if err := forUpdate(conn(ctx, r.db)).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProjectNotFound, "lock project")
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	query := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.Project{})
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.CreatorID != 0 {
			q = q.Where("creator_id = ?", filter.CreatorID)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	var projects []*domain.Project
	if err := query().Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := conn(ctx, r.db).Model(&domain.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) InsertContribution(ctx context.Context, c *domain.Contribution) error {
	if err := conn(ctx, r.db).Create(c).Error; err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindContribution(ctx context.Context, id uint) (*domain.Contribution, error) {
	var c domain.Contribution
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.NewError(domain.ErrNotFound, "contribution not found"), "find contribution")
	}
	return &c, nil
}

func (r *ProjectRepository) HasContributed(ctx context.Context, projectID, contributorID uint) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&domain.Contribution{}).
		Where("project_id = ? AND contributor_id = ?", projectID, contributorID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check contributor: %w", err)
	}
	return n > 0, nil
}

func (r *ProjectRepository) ApplyContribution(ctx context.Context, projectID uint, amount domain.Money, newBackers int64) error {
	res := conn(ctx, r.db).Model(&domain.Project{}).Where("id = ?", projectID).UpdateColumns(map[string]any{
		"current_amount": gorm.Expr("current_amount + ?", int64(amount)),
		"backers_count":  gorm.Expr("backers_count + ?", newBackers),
		"updated_at":     time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("apply contribution: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) ListContributions(ctx context.Context, projectID uint) ([]*domain.Contribution, error) {
	var out []*domain.Contribution
	err := conn(ctx, r.db).Where("project_id = ?", projectID).Order("created_at DESC, id DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return out, nil
}

func (r *ProjectRepository) ListContributionsBy(ctx context.Context, contributorID uint) ([]*domain.Contribution, error) {
	var out []*domain.Contribution
	err := conn(ctx, r.db).Where("contributor_id = ?", contributorID).Order("created_at DESC, id DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list my contributions: %w", err)
	}
	return out, nil
}

func (r *ProjectRepository) Stats(ctx context.Context) (*domain.FundingStats, error) {
	db := conn(ctx, r.db)
	var s domain.FundingStats
	if err := db.Model(&domain.Project{}).Count(&s.TotalProjects).Error; err != nil {
		return nil, fmt.Errorf("funding stats: %w", err)
	}
	if err := db.Model(&domain.Project{}).Where("status = ?", domain.ProjectActive).Count(&s.ActiveProjects).Error; err != nil {
		return nil, fmt.Errorf("funding stats: %w", err)
	}
	var raised int64
	if err := db.Model(&domain.Contribution{}).Select("COALESCE(SUM(amount), 0)").Scan(&raised).Error; err != nil {
		return nil, fmt.Errorf("funding stats: %w", err)
	}
	s.TotalRaised = domain.Money(raised)
	if err := db.Model(&domain.Contribution{}).Count(&s.TotalContributions).Error; err != nil {
		return nil, fmt.Errorf("funding stats: %w", err)
	}
	return &s, nil
}
