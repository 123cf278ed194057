package domain

import (
	"math"
	"time"
)

// ProjectStatus represents the lifecycle state of a crowdfunding project.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectFunded    ProjectStatus = "funded"
	ProjectExpired   ProjectStatus = "expired"
	ProjectCancelled ProjectStatus = "cancelled"
	ProjectRejected  ProjectStatus = "rejected"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectDraft:   {ProjectPending, ProjectActive, ProjectCancelled},
	ProjectPending: {ProjectActive, ProjectRejected, ProjectCancelled},
	ProjectActive:  {ProjectFunded, ProjectExpired, ProjectCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is a crowdfunding campaign. CurrentAmount is the sum of its
// contributions and BackersCount the number of distinct contributors.
type Project struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Title            string        `json:"title" gorm:"size:200;not null"`
	Description      string        `json:"description" gorm:"not null"`
	ShortDescription string        `json:"short_description" gorm:"size:500"`
	CreatorID        uint          `json:"creator_id" gorm:"not null;index"`
	Creator          *User         `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Category         string        `json:"category" gorm:"size:20;index"`
	TargetAmount     Money         `json:"target_amount" gorm:"not null"`
	CurrentAmount    Money         `json:"current_amount" gorm:"not null;default:0"`
	Currency         string        `json:"currency" gorm:"size:3;not null;default:USD"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	DurationDays     int           `json:"duration_days" gorm:"not null"`
	Status           ProjectStatus `json:"status" gorm:"size:20;not null;default:draft;index"`
	BackersCount     int64         `json:"backers_count" gorm:"not null;default:0"`
	RejectionReason  string        `json:"rejection_reason,omitempty"`
	ApprovedAt       *time.Time    `json:"approved_at"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// FundingPercentage is current/target as a percentage, capped at 100.
func (p *Project) FundingPercentage() float64 {
	if p.TargetAmount <= 0 {
		return 0
	}
	pct := float64(p.CurrentAmount) / float64(p.TargetAmount) * 100
	return math.Min(math.Round(pct*100)/100, 100)
}

// IsFunded reports whether the target has been reached.
func (p *Project) IsFunded() bool {
	return p.CurrentAmount >= p.TargetAmount
}

// IsExpired reports whether an active project has run past its end date.
func (p *Project) IsExpired(now time.Time) bool {
	return p.Status == ProjectActive && now.After(p.EndDate)
}

type ContributionType string

const (
	ContributionOneTime   ContributionType = "one_time"
	ContributionRecurring ContributionType = "recurring"
)

const PaymentCompleted = "completed"

// Contribution is a pledge towards a project. Immutable once recorded.
type Contribution struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	ProjectID        uint             `json:"project_id" gorm:"not null;index:idx_contribution_project_user"`
	ContributorID    uint             `json:"contributor_id" gorm:"not null;index:idx_contribution_project_user;index"`
	Amount           Money            `json:"amount" gorm:"not null"`
	ContributionType ContributionType `json:"contribution_type" gorm:"size:20;not null;default:one_time"`
	PaymentStatus    string           `json:"payment_status" gorm:"size:20;not null"`
	IsAnonymous      bool             `json:"is_anonymous"`
	DisplayName      string           `json:"display_name" gorm:"size:100"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// FundingStats aggregates the funding ledger.
type FundingStats struct {
	TotalProjects      int64 `json:"total_projects"`
	ActiveProjects     int64 `json:"active_projects"`
	TotalRaised        Money `json:"total_raised"`
	TotalContributions int64 `json:"total_contributions"`
}
