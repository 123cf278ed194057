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
	defaultMaxMentees      = 3
	defaultSessionDuration = 60
)

var (
	validAvailability = map[domain.Availability]bool{
		domain.AvailabilityAvailable:   true,
		domain.AvailabilityBusy:        true,
		domain.AvailabilityUnavailable: true,
	}
	validSessionTypes = map[domain.SessionType]bool{
		domain.SessionVideoCall: true,
		domain.SessionPhoneCall: true,
		domain.SessionInPerson:  true,
		domain.SessionChat:      true,
	}
)

type mentorshipService struct {
	repo     ports.MentorshipRepository
	tx       ports.Transactor
	notifier ports.Notifier
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewMentorshipService returns a MentorshipService implementation.
func NewMentorshipService(
	repo ports.MentorshipRepository,
	tx ports.Transactor,
	notifier ports.Notifier,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.MentorshipService {
	return &mentorshipService{repo: repo, tx: tx, notifier: notifier, activity: activity, log: log}
}

func (s *mentorshipService) UpsertProfile(ctx context.Context, actor domain.Actor, in ports.MentorProfileInput) (*domain.MentorProfile, error) {
	in.Bio = strings.TrimSpace(in.Bio)
	if in.Bio == "" {
		return nil, domain.NewFieldError("bio", "bio is required")
	}
	if in.Availability == "" {
		in.Availability = domain.AvailabilityAvailable
	}
	if !validAvailability[in.Availability] {
		return nil, domain.NewFieldError("availability_status", "availability must be available, busy or unavailable")
	}
	if in.MaxMentees == 0 {
		in.MaxMentees = defaultMaxMentees
	}
	if in.MaxMentees < 1 || in.MaxMentees > 20 {
		return nil, domain.NewFieldError("max_mentees", "max mentees must be between 1 and 20")
	}
	if in.Timezone == "" {
		in.Timezone = "UTC"
	}
	if in.ExpertiseAreas == nil {
		in.ExpertiseAreas = []string{}
	}

	now := time.Now().UTC()
	p := &domain.MentorProfile{
		UserID:            actor.UserID,
		Bio:               in.Bio,
		ExpertiseAreas:    in.ExpertiseAreas,
		YearsOfExperience: in.YearsOfExperience,
		CurrentCompany:    in.CurrentCompany,
		CurrentPosition:   in.CurrentPosition,
		Availability:      in.Availability,
		MaxMentees:        in.MaxMentees,
		Timezone:          in.Timezone,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.FindProfileByUser(ctx, actor.UserID)
}

func (s *mentorshipService) GetProfile(ctx context.Context, userID uint) (*domain.MentorProfile, error) {
	return s.repo.FindProfileByUser(ctx, userID)
}

func (s *mentorshipService) ListMentors(ctx context.Context, filter ports.ListMentorsFilter) ([]*domain.MentorProfile, int64, error) {
	return s.repo.ListProfiles(ctx, filter)
}

func (s *mentorshipService) Request(
	ctx context.Context,
	actor domain.Actor,
	in ports.MentorshipRequestInput,
) (*domain.MentorshipRequest, error) {
	if in.MentorID == actor.UserID {
		return nil, domain.ErrSelfMentorship
	}
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	fields := map[string]string{}
	if in.Subject == "" {
		fields["subject"] = "subject is required"
	}
	if in.Message == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	req := &domain.MentorshipRequest{
		MenteeID: actor.UserID,
		MentorID: in.MentorID,
		Subject:  in.Subject,
		Message:  in.Message,
		Goals:    in.Goals,
		Status:   domain.MentorshipPending,
	}
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		profile, err := s.repo.FindProfileByUser(ctx, in.MentorID)
		if err != nil {
			return err
		}
		if !profile.IsActive {
			return domain.ErrMentorNotFound
		}
		open, err := s.repo.HasOpenRequest(ctx, actor.UserID, in.MentorID)
		if err != nil {
			return err
		}
		if open {
			return domain.ErrDuplicateMentorship
		}
		if err := s.repo.CreateRequest(ctx, req); err != nil {
			return err
		}
		_, err = s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   in.MentorID,
			Type:     domain.NotifyMentorshipRequest,
			Title:    "New mentorship request",
			Message:  fmt.Sprintf("%s asked you to mentor them: %s", actor.Username, req.Subject),
			Priority: domain.PriorityHigh,
			Related:  domain.Ref(domain.RelatedMentorshipRequest, req.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityMentorshipRequested, "requested mentorship",
		map[string]any{"mentor_id": in.MentorID, "request_id": req.ID})
	return req, nil
}

// Respond lets the mentor accept or reject a pending request. Accepting bumps
// total_mentees in the same transaction.
func (s *mentorshipService) Respond(
	ctx context.Context,
	actor domain.Actor,
	id uint,
	action domain.ConnectionAction,
	response string,
) (*domain.MentorshipRequest, error) {
	var target domain.MentorshipStatus
	switch action {
	case domain.ActionAccept:
		target = domain.MentorshipAccepted
	case domain.ActionReject:
		target = domain.MentorshipRejected
	default:
		return nil, domain.NewFieldError("action", "action must be accept or reject")
	}

	var updated *domain.MentorshipRequest
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		req, err := s.repo.FindRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.MentorID != actor.UserID || req.Status != domain.MentorshipPending {
			return domain.ErrMentorshipNotFound
		}

		now := time.Now().UTC()
		fields := map[string]any{
			"status":          target,
			"mentor_response": response,
			"responded_at":    now,
			"updated_at":      now,
		}
		if target == domain.MentorshipAccepted {
			fields["started_at"] = now
		}
		if err := s.repo.UpdateRequest(ctx, id, fields); err != nil {
			return err
		}
		if updated, err = s.repo.FindRequest(ctx, id); err != nil {
			return err
		}
		if target != domain.MentorshipAccepted {
			return nil
		}

		if err := s.repo.AdjustProfileCounter(ctx, req.MentorID, ports.CounterTotalMentees, 1); err != nil {
			return err
		}
		_, err = s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   req.MenteeID,
			Type:     domain.NotifyMentorshipAccepted,
			Title:    "Mentorship accepted",
			Message:  fmt.Sprintf("%s accepted your mentorship request", actor.Username),
			Priority: domain.PriorityHigh,
			Related:  domain.Ref(domain.RelatedMentorshipRequest, req.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("request_id", id).Str("status", string(target)).Msg("mentorship request resolved")
	return updated, nil
}

func (s *mentorshipService) Complete(ctx context.Context, actor domain.Actor, id uint) (*domain.MentorshipRequest, error) {
	var updated *domain.MentorshipRequest
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		req, err := s.repo.FindRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !req.HasParticipant(actor.UserID) {
			return domain.ErrMentorshipNotFound
		}
		if req.Status != domain.MentorshipAccepted || !req.Status.CanTransitionTo(domain.MentorshipCompleted) {
			return domain.ErrMentorshipNotAccepted
		}
		now := time.Now().UTC()
		err = s.repo.UpdateRequest(ctx, id, map[string]any{
			"status":       domain.MentorshipCompleted,
			"completed_at": now,
			"updated_at":   now,
		})
		if err != nil {
			return err
		}
		updated, err = s.repo.FindRequest(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *mentorshipService) ListRequests(ctx context.Context, actor domain.Actor, asMentor bool) ([]*domain.MentorshipRequest, error) {
	return s.repo.ListRequests(ctx, actor.UserID, asMentor)
}

// participantRequest loads a request the actor takes part in; to anyone else
// it does not exist.
func (s *mentorshipService) participantRequest(ctx context.Context, actor domain.Actor, id uint) (*domain.MentorshipRequest, error) {
	req, err := s.repo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.HasParticipant(actor.UserID) {
		return nil, domain.ErrMentorshipNotFound
	}
	return req, nil
}

func (s *mentorshipService) ScheduleSession(
	ctx context.Context,
	actor domain.Actor,
	mentorshipID uint,
	in ports.ScheduleSessionInput,
) (*domain.MentorshipSession, error) {
	in.Title = strings.TrimSpace(in.Title)
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if !validSessionTypes[in.SessionType] {
		fields["session_type"] = "session type must be video_call, phone_call, in_person or chat"
	}
	if in.ScheduledAt.IsZero() {
		fields["scheduled_at"] = "scheduled_at is required"
	}
	if in.DurationMinutes < 0 {
		fields["duration_minutes"] = "duration must be positive"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = defaultSessionDuration
	}

	req, err := s.participantRequest(ctx, actor, mentorshipID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.MentorshipAccepted {
		return nil, domain.ErrMentorshipNotAccepted
	}

	session := &domain.MentorshipSession{
		MentorshipID:    mentorshipID,
		Title:           in.Title,
		Description:     in.Description,
		SessionType:     in.SessionType,
		ScheduledAt:     in.ScheduledAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		MeetingLink:     in.MeetingLink,
		Status:          domain.SessionScheduled,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// moveSession applies a session transition for a participant of its mentorship.
func (s *mentorshipService) moveSession(
	ctx context.Context,
	actor domain.Actor,
	sessionID uint,
	next domain.SessionStatus,
	apply func(ctx context.Context, req *domain.MentorshipRequest, session *domain.MentorshipSession, fields map[string]any) error,
) (*domain.MentorshipSession, error) {
	var out *domain.MentorshipSession
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		session, err := s.repo.FindSessionForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		req, err := s.repo.FindRequest(ctx, session.MentorshipID)
		if err != nil {
			return err
		}
		if !req.HasParticipant(actor.UserID) {
			return domain.ErrSessionNotFound
		}
		if !session.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, session.Status, next)
		}

		fields := map[string]any{"status": next, "updated_at": time.Now().UTC()}
		if err := apply(ctx, req, session, fields); err != nil {
			return err
		}
		if err := s.repo.UpdateSession(ctx, sessionID, fields); err != nil {
			return err
		}
		out, err = s.repo.FindSessionForUpdate(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mentorshipService) StartSession(ctx context.Context, actor domain.Actor, sessionID uint) (*domain.MentorshipSession, error) {
	return s.moveSession(ctx, actor, sessionID, domain.SessionInProgress,
		func(_ context.Context, _ *domain.MentorshipRequest, _ *domain.MentorshipSession, fields map[string]any) error {
			fields["started_at"] = time.Now().UTC()
			return nil
		})
}

// EndSession completes a running session, records its real length and
// bumps the mentor's total_sessions.
func (s *mentorshipService) EndSession(ctx context.Context, actor domain.Actor, sessionID uint) (*domain.MentorshipSession, error) {
	return s.moveSession(ctx, actor, sessionID, domain.SessionCompleted,
		func(ctx context.Context, req *domain.MentorshipRequest, session *domain.MentorshipSession, fields map[string]any) error {
			now := time.Now().UTC()
			fields["ended_at"] = now
			if session.StartedAt != nil {
				fields["actual_duration_minutes"] = int(now.Sub(*session.StartedAt).Round(time.Minute) / time.Minute)
			}
			return s.repo.AdjustProfileCounter(ctx, req.MentorID, ports.CounterTotalSessions, 1)
		})
}

func (s *mentorshipService) ListSessions(ctx context.Context, actor domain.Actor, mentorshipID uint) ([]*domain.MentorshipSession, error) {
	if _, err := s.participantRequest(ctx, actor, mentorshipID); err != nil {
		return nil, err
	}
	return s.repo.ListSessions(ctx, mentorshipID)
}
