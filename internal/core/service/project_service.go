package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	maxDurationDays = 365
	defaultCurrency = "USD"
)

var errProjectStillRunning = domain.NewError(domain.ErrConflict, "project has neither reached its target nor expired")

type projectService struct {
	projects    ports.ProjectRepository
	idempotency ports.IdempotencyStore
	tx          ports.Transactor
	notifier    ports.Notifier
	activity    ports.ActivityRecorder
	log         zerolog.Logger
}

// NewProjectService returns a ProjectService implementation. idempotency may
// be nil, in which case Idempotency-Key replays are not detected.
func NewProjectService(
	projects ports.ProjectRepository,
	idempotency ports.IdempotencyStore,
	tx ports.Transactor,
	notifier ports.Notifier,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.ProjectService {
	return &projectService{
		projects:    projects,
		idempotency: idempotency,
		tx:          tx,
		notifier:    notifier,
		activity:    activity,
		log:         log,
	}
}

func newProjectView(p *domain.Project) *ports.ProjectView {
	return &ports.ProjectView{
		Project:           p,
		FundingPercentage: p.FundingPercentage(),
		IsFunded:          p.IsFunded(),
		IsExpired:         p.IsExpired(time.Now().UTC()),
	}
}

func (s *projectService) Create(ctx context.Context, actor domain.Actor, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	in.Title = strings.TrimSpace(in.Title)
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.TargetAmount <= 0 {
		fields["target_amount"] = "target amount must be greater than zero"
	}
	if in.DurationDays < 1 || in.DurationDays > maxDurationDays {
		fields["duration_days"] = "duration must be between 1 and 365 days"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}

	now := time.Now().UTC()
	p := &domain.Project{
		Title:            in.Title,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		CreatorID:        actor.UserID,
		Category:         in.Category,
		TargetAmount:     in.TargetAmount,
		Currency:         strings.ToUpper(in.Currency),
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, in.DurationDays),
		DurationDays:     in.DurationDays,
		Status:           domain.ProjectDraft,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityProjectCreated, "created a project", map[string]any{"project_id": p.ID})
	s.log.Info().Uint("project_id", p.ID).Uint("creator_id", actor.UserID).Str("target", p.TargetAmount.String()).Msg("project created")
	return newProjectView(p), nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*ports.ProjectView, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newProjectView(p), nil
}

func (s *projectService) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*ports.ProjectView, int64, error) {
	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*ports.ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectView(p))
	}
	return out, total, nil
}

// Update edits a draft. Only the creator may do it.
func (s *projectService) Update(ctx context.Context, actor domain.Actor, id uint, in ports.UpdateProjectInput) (*ports.ProjectView, error) {
	var updated *domain.Project
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		p, err := s.projects.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.CreatorID != actor.UserID {
			return domain.ErrForbidden
		}
		if p.Status != domain.ProjectDraft {
			return domain.ErrProjectNotEditable
		}

		fields := map[string]any{"updated_at": time.Now().UTC()}
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return domain.NewFieldError("title", "title is required")
			}
			fields["title"] = title
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.ShortDescription != nil {
			fields["short_description"] = *in.ShortDescription
		}
		if in.Category != nil {
			fields["category"] = *in.Category
		}
		if in.TargetAmount != nil {
			if *in.TargetAmount <= 0 {
				return domain.NewFieldError("target_amount", "target amount must be greater than zero")
			}
			fields["target_amount"] = *in.TargetAmount
		}
		if in.DurationDays != nil {
			if *in.DurationDays < 1 || *in.DurationDays > maxDurationDays {
				return domain.NewFieldError("duration_days", "duration must be between 1 and 365 days")
			}
			fields["duration_days"] = *in.DurationDays
			fields["end_date"] = p.StartDate.AddDate(0, 0, *in.DurationDays)
		}
		if err := s.projects.Update(ctx, id, fields); err != nil {
			return err
		}
		updated, err = s.projects.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newProjectView(updated), nil
}

// transition moves a project to next under a row lock once allow approves
// the actor. extra columns are written alongside the status.
func (s *projectService) transition(
	ctx context.Context,
	id uint,
	allow func(p *domain.Project) error,
	next func(p *domain.Project) (domain.ProjectStatus, error),
	extra map[string]any,
) (*ports.ProjectView, error) {
	var updated *domain.Project
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		p, err := s.projects.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := allow(p); err != nil {
			return err
		}
		target, err := next(p)
		if err != nil {
			return err
		}
		if !p.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, p.Status, target)
		}

		fields := map[string]any{"status": target, "updated_at": time.Now().UTC()}
		for k, v := range extra {
			fields[k] = v
		}
		if err := s.projects.Update(ctx, id, fields); err != nil {
			return err
		}
		updated, err = s.projects.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("project_id", id).Str("status", string(updated.Status)).Msg("project status changed")
	return newProjectView(updated), nil
}

func to(status domain.ProjectStatus) func(*domain.Project) (domain.ProjectStatus, error) {
	return func(*domain.Project) (domain.ProjectStatus, error) { return status, nil }
}

func creatorOnly(actor domain.Actor) func(*domain.Project) error {
	return func(p *domain.Project) error {
		if p.CreatorID != actor.UserID {
			return domain.ErrForbidden
		}
		return nil
	}
}

func creatorOrAdmin(actor domain.Actor) func(*domain.Project) error {
	return func(p *domain.Project) error {
		if p.CreatorID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return nil
	}
}

func adminOnly(actor domain.Actor) func(*domain.Project) error {
	return func(*domain.Project) error {
		if !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return nil
	}
}

func (s *projectService) Submit(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
	return s.transition(ctx, id, creatorOnly(actor), to(domain.ProjectPending), nil)
}

// Activate opens a project for contributions. A creator may only activate
// their own draft; an admin may also approve a pending one.
func (s *projectService) Activate(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
	allow := func(p *domain.Project) error {
		if actor.IsAdmin() {
			return nil
		}
		if p.CreatorID != actor.UserID || p.Status != domain.ProjectDraft {
			return domain.ErrForbidden
		}
		return nil
	}
	return s.transition(ctx, id, allow, to(domain.ProjectActive), map[string]any{"approved_at": time.Now().UTC()})
}

func (s *projectService) Reject(ctx context.Context, actor domain.Actor, id uint, reason string) (*ports.ProjectView, error) {
	return s.transition(ctx, id, adminOnly(actor), to(domain.ProjectRejected), map[string]any{"rejection_reason": reason})
}

func (s *projectService) Cancel(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
	return s.transition(ctx, id, creatorOrAdmin(actor), to(domain.ProjectCancelled), nil)
}

// Close settles an active project as funded or expired.
func (s *projectService) Close(ctx context.Context, actor domain.Actor, id uint) (*ports.ProjectView, error) {
	next := func(p *domain.Project) (domain.ProjectStatus, error) {
		switch {
		case p.Status != domain.ProjectActive:
			return "", domain.ErrProjectNotActive
		case p.IsFunded():
			return domain.ProjectFunded, nil
		case p.IsExpired(time.Now().UTC()):
			return domain.ProjectExpired, nil
		}
		return "", errProjectStillRunning
	}
	return s.transition(ctx, id, creatorOrAdmin(actor), next, nil)
}

// Contribute records a completed contribution. The project row is locked so
// the first-time-backer check and the counter update see the same state.
func (s *projectService) Contribute(
	ctx context.Context,
	actor domain.Actor,
	projectID uint,
	in ports.ContributeInput,
) (*ports.ContributionResult, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.ContributionType == "" {
		in.ContributionType = domain.ContributionOneTime
	}
	if in.ContributionType != domain.ContributionOneTime && in.ContributionType != domain.ContributionRecurring {
		return nil, domain.NewFieldError("contribution_type", "contribution type must be one_time or recurring")
	}

	claimed, replay, err := s.reserve(ctx, actor, projectID, in.IdempotencyKey)
	if err != nil || replay != nil {
		return replay, err
	}

	c := &domain.Contribution{
		ProjectID:        projectID,
		ContributorID:    actor.UserID,
		Amount:           in.Amount,
		ContributionType: in.ContributionType,
		PaymentStatus:    domain.PaymentCompleted,
		IsAnonymous:      in.IsAnonymous,
		DisplayName:      in.DisplayName,
	}
	var project *domain.Project
	err = inTx(ctx, s.tx, func(ctx context.Context) error {
		p, err := s.projects.FindForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		if p.Status != domain.ProjectActive {
			return domain.ErrProjectNotActive
		}

		seen, err := s.projects.HasContributed(ctx, projectID, actor.UserID)
		if err != nil {
			return err
		}
		if err := s.projects.InsertContribution(ctx, c); err != nil {
			return err
		}
		var newBackers int64
		if !seen {
			newBackers = 1
		}
		if err := s.projects.ApplyContribution(ctx, projectID, in.Amount, newBackers); err != nil {
			return err
		}
		p.CurrentAmount += in.Amount
		p.BackersCount += newBackers
		project = p

		if p.CreatorID == actor.UserID {
			return nil
		}
		_, err = s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   p.CreatorID,
			Type:     domain.NotifyProjectFunded,
			Title:    "New contribution",
			Message:  fmt.Sprintf("%s contributed %s %s to %q", contributorName(actor, in), in.Amount, p.Currency, p.Title),
			Priority: domain.PriorityMedium,
			Related:  domain.Ref(domain.RelatedProject, p.ID),
		})
		return err
	})
	if claimed {
		s.settle(ctx, actor.UserID, in.IdempotencyKey, c.ID, err)
	}
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityProjectFunded, "contributed to a project",
		map[string]any{"project_id": projectID, "amount": in.Amount.String()})
	s.log.Info().
		Uint("project_id", projectID).
		Uint("contributor_id", actor.UserID).
		Str("amount", in.Amount.String()).
		Str("current_amount", project.CurrentAmount.String()).
		Int64("backers_count", project.BackersCount).
		Msg("contribution recorded")

	return &ports.ContributionResult{Contribution: c, Project: newProjectView(project)}, nil
}

// reserve claims the Idempotency-Key before the contribution is written.
// claimed reports whether the caller now owns the key and must settle it.
// A key that already produced a contribution yields that contribution as a
// replay; a key still in flight yields ErrContributionInProgress. Without a
// store, or when it is unreachable, the contribution proceeds unguarded.
func (s *projectService) reserve(
	ctx context.Context,
	actor domain.Actor,
	projectID uint,
	key string,
) (claimed bool, replay *ports.ContributionResult, err error) {
	if key == "" || s.idempotency == nil {
		return false, nil, nil
	}
	reserved, id, err := s.idempotency.Reserve(ctx, actor.UserID, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, processing anyway")
		return false, nil, nil
	}
	if reserved {
		return true, nil, nil
	}
	if id == 0 {
		return false, nil, domain.ErrContributionInProgress
	}

	c, err := s.projects.FindContribution(ctx, id)
	if err != nil {
		return false, nil, err
	}
	if c.ProjectID != projectID || c.ContributorID != actor.UserID {
		return false, nil, domain.ErrIdempotencyKeyReused
	}
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return false, nil, err
	}
	s.log.Info().Str("idempotency_key", key).Uint("contribution_id", c.ID).Msg("idempotent replay")
	return false, &ports.ContributionResult{Contribution: c, Project: newProjectView(p), Replayed: true}, nil
}

// settle binds a claimed key to the committed contribution, or frees it when
// the transaction failed so the client can retry.
func (s *projectService) settle(ctx context.Context, userID uint, key string, contributionID uint, txErr error) {
	ctx = context.WithoutCancel(ctx)
	if txErr != nil {
		if err := s.idempotency.Release(ctx, userID, key); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
		}
		return
	}
	if err := s.idempotency.Complete(ctx, userID, key, contributionID); err != nil {
		s.log.Warn().Err(err).Uint("contribution_id", contributionID).Msg("failed to store idempotency key")
	}
}

func contributorName(actor domain.Actor, in ports.ContributeInput) string {
	switch {
	case in.IsAnonymous:
		return "An anonymous backer"
	case in.DisplayName != "":
		return in.DisplayName
	default:
		return actor.Username
	}
}

func (s *projectService) ListContributions(ctx context.Context, projectID uint) ([]*domain.Contribution, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	list, err := s.projects.ListContributions(ctx, projectID)
	if err != nil {
		return nil, err
	}
	// anonymous backers stay hidden on the public listing
	for _, c := range list {
		if c.IsAnonymous {
			c.ContributorID = 0
			c.DisplayName = ""
		}
	}
	return list, nil
}

func (s *projectService) MyContributions(ctx context.Context, actor domain.Actor) ([]*domain.Contribution, error) {
	return s.projects.ListContributionsBy(ctx, actor.UserID)
}

func (s *projectService) Stats(ctx context.Context) (*domain.FundingStats, error) {
	return s.projects.Stats(ctx)
}
