package ports

import (
	"context"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

type ListProjectsFilter struct {
	Status    string
	Category  string
	CreatorID uint
	Limit     int
	Offset    int
}

// ProjectRepository defines persistence operations for the funding ledger.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id uint) (*domain.Project, error)
	// FindForUpdate loads the project and, where the store supports it, locks
	// the row until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id uint) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error

	InsertContribution(ctx context.Context, c *domain.Contribution) error
	FindContribution(ctx context.Context, id uint) (*domain.Contribution, error)
	HasContributed(ctx context.Context, projectID, contributorID uint) (bool, error)
	// ApplyContribution adds amount to current_amount and newBackers to
	// backers_count as one statement.
	ApplyContribution(ctx context.Context, projectID uint, amount domain.Money, newBackers int64) error
	ListContributions(ctx context.Context, projectID uint) ([]*domain.Contribution, error)
	ListContributionsBy(ctx context.Context, contributorID uint) ([]*domain.Contribution, error)
	Stats(ctx context.Context) (*domain.FundingStats, error)
}

// IdempotencyStore remembers which contribution a client-supplied key produced.
//
// Reserve claims the key before any write happens. When the key is already
// claimed it reports reserved=false together with the contribution id stored
// for it, which is 0 while the first request is still in flight. Complete
// binds a reserved key to the contribution it produced; Release frees a
// reservation whose request failed.
type IdempotencyStore interface {
	Reserve(ctx context.Context, userID uint, key string) (reserved bool, contributionID uint, err error)
	Complete(ctx context.Context, userID uint, key string, contributionID uint) error
	Release(ctx context.Context, userID uint, key string) error
}

type CreateProjectInput struct {
	Title            string
	Description      string
	ShortDescription string
	Category         string
	TargetAmount     domain.Money
	Currency         string
	DurationDays     int
}

type UpdateProjectInput struct {
	Title            *string
	Description      *string
	ShortDescription *string
	Category         *string
	TargetAmount     *domain.Money
	DurationDays     *int
}

type ContributeInput struct {
	Amount           domain.Money
	ContributionType domain.ContributionType
	IsAnonymous      bool
	DisplayName      string
	IdempotencyKey   string
}

// ProjectView is a project together with its derived funding fields.
type ProjectView struct {
	*domain.Project
	FundingPercentage float64 `json:"funding_percentage"`
	IsFunded          bool    `json:"is_funded"`
	IsExpired         bool    `json:"is_expired"`
}

// ContributionResult is returned by Contribute.
type ContributionResult struct {
	Contribution *domain.Contribution
	Project      *ProjectView
	Replayed     bool
}

type ProjectService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateProjectInput) (*ProjectView, error)
	Get(ctx context.Context, id uint) (*ProjectView, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*ProjectView, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uint, in UpdateProjectInput) (*ProjectView, error)
	Submit(ctx context.Context, actor domain.Actor, id uint) (*ProjectView, error)
	Activate(ctx context.Context, actor domain.Actor, id uint) (*ProjectView, error)
	Reject(ctx context.Context, actor domain.Actor, id uint, reason string) (*ProjectView, error)
	Cancel(ctx context.Context, actor domain.Actor, id uint) (*ProjectView, error)
	Close(ctx context.Context, actor domain.Actor, id uint) (*ProjectView, error)
	Contribute(ctx context.Context, actor domain.Actor, projectID uint, in ContributeInput) (*ContributionResult, error)
	ListContributions(ctx context.Context, projectID uint) ([]*domain.Contribution, error)
	MyContributions(ctx context.Context, actor domain.Actor) ([]*domain.Contribution, error)
	Stats(ctx context.Context) (*domain.FundingStats, error)
}
