package handler

import (
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type createProjectRequest struct {
	Title            string       `json:"title" validate:"required,max=200"`
	Description      string       `json:"description" validate:"required"`
	ShortDescription string       `json:"short_description" validate:"max=500"`
	Category         string       `json:"category" validate:"required,max=20"`
	TargetAmount     domain.Money `json:"target_amount" swaggertype:"number"`
	Currency         string       `json:"currency" validate:"omitempty,len=3,alpha"`
	DurationDays     int          `json:"duration_days"`
}

func (r createProjectRequest) toInput() ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		TargetAmount:     r.TargetAmount,
		Currency:         r.Currency,
		DurationDays:     r.DurationDays,
	}
}

type updateProjectRequest struct {
	Title            *string       `json:"title" validate:"omitempty,max=200"`
	Description      *string       `json:"description"`
	ShortDescription *string       `json:"short_description" validate:"omitempty,max=500"`
	Category         *string       `json:"category" validate:"omitempty,max=20"`
	TargetAmount     *domain.Money `json:"target_amount" swaggertype:"number"`
	DurationDays     *int          `json:"duration_days"`
}

func (r updateProjectRequest) toInput() ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		TargetAmount:     r.TargetAmount,
		DurationDays:     r.DurationDays,
	}
}

type rejectProjectRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type contributeRequest struct {
	Amount           domain.Money `json:"amount" swaggertype:"number"`
	ContributionType string       `json:"contribution_type" validate:"omitempty,oneof=one_time recurring"`
	IsAnonymous      bool         `json:"is_anonymous"`
	DisplayName      string       `json:"display_name" validate:"max=100"`
}

func (r contributeRequest) toInput(idempotencyKey string) ports.ContributeInput {
	return ports.ContributeInput{
		Amount:           r.Amount,
		ContributionType: domain.ContributionType(r.ContributionType),
		IsAnonymous:      r.IsAnonymous,
		DisplayName:      r.DisplayName,
		IdempotencyKey:   idempotencyKey,
	}
}

type listProjectsQuery struct {
	PageQuery
	Status    string `query:"status" validate:"omitempty,oneof=draft pending active funded expired cancelled rejected"`
	Category  string `query:"category"`
	CreatorID uint   `query:"creator_id"`
}

func (q listProjectsQuery) toFilter() ports.ListProjectsFilter {
	return ports.ListProjectsFilter{
		Status:    q.Status,
		Category:  q.Category,
		CreatorID: q.CreatorID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
}

type contributionResponse struct {
	Contribution *domain.Contribution `json:"contribution"`
	Project      *ports.ProjectView   `json:"project"`
	Replayed     bool                 `json:"replayed"`
}
