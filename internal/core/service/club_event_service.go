package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var (
	validEventTypes = map[domain.EventType]bool{
		domain.EventMeeting:    true,
		domain.EventWorkshop:   true,
		domain.EventSocial:     true,
		domain.EventConference: true,
		domain.EventNetworking: true,
		domain.EventOther:      true,
	}
	validLocationTypes = map[domain.LocationType]bool{
		domain.LocationPhysical: true,
		domain.LocationVirtual:  true,
		domain.LocationHybrid:   true,
	}
)

// CreateEvent schedules an event for an active member of the club. A
// published event is announced to every other active member.
func (s *clubService) CreateEvent(
	ctx context.Context,
	actor domain.Actor,
	clubID uint,
	in ports.CreateEventInput,
) (*domain.ClubEvent, error) {
	ev, err := newClubEvent(actor, clubID, in)
	if err != nil {
		return nil, err
	}

	err = inTx(ctx, s.tx, func(ctx context.Context) error {
		club, err := s.clubs.FindByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.Status != domain.ClubActive {
			return domain.ErrClubInactive
		}
		m, err := s.membership(ctx, clubID, actor)
		if err != nil {
			return err
		}
		if m == nil && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		if err := s.clubs.InsertEvent(ctx, ev); err != nil {
			return err
		}
		if ev.Status == domain.EventPublished {
			return s.announce(ctx, club, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityEventCreated, "scheduled a club event",
		map[string]any{"club_id": clubID, "event_id": ev.ID})
	s.log.Info().Uint("club_id", clubID).Uint("event_id", ev.ID).Str("status", string(ev.Status)).Msg("club event created")
	return ev, nil
}

func newClubEvent(actor domain.Actor, clubID uint, in ports.CreateEventInput) (*domain.ClubEvent, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.EventType == "" {
		in.EventType = domain.EventMeeting
	}
	if in.LocationType == "" {
		in.LocationType = domain.LocationVirtual
	}
	if in.Status == "" {
		in.Status = domain.EventDraft
	}
	if in.Timezone == "" {
		in.Timezone = "UTC"
	}

	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if !validEventTypes[in.EventType] {
		fields["event_type"] = "unknown event type"
	}
	if !validLocationTypes[in.LocationType] {
		fields["location_type"] = "location type must be physical, virtual or hybrid"
	}
	if in.Status != domain.EventDraft && in.Status != domain.EventPublished {
		fields["status"] = "a new event must be draft or published"
	}
	if in.StartDate.IsZero() {
		fields["start_date"] = "start date is required"
	} else if !in.EndDate.After(in.StartDate) {
		fields["end_date"] = "end date must be after the start date"
	}
	if in.MaxAttendees != nil && *in.MaxAttendees < 1 {
		fields["max_attendees"] = "max attendees must be at least 1"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	public := true
	if in.IsPublic != nil {
		public = *in.IsPublic
	}
	return &domain.ClubEvent{
		ClubID:               clubID,
		OrganizerID:          actor.UserID,
		Title:                in.Title,
		Description:          in.Description,
		EventType:            in.EventType,
		StartDate:            in.StartDate.UTC(),
		EndDate:              in.EndDate.UTC(),
		Timezone:             in.Timezone,
		LocationType:         in.LocationType,
		Location:             in.Location,
		MeetingLink:          in.MeetingLink,
		MaxAttendees:         in.MaxAttendees,
		RegistrationRequired: in.RegistrationRequired,
		Status:               in.Status,
		IsPublic:             public,
	}, nil
}

// ListEvents returns every event to members and only the listed ones to
// everybody else.
func (s *clubService) ListEvents(ctx context.Context, actor domain.Actor, clubID uint) ([]*domain.ClubEvent, error) {
	if _, err := s.clubs.FindByID(ctx, clubID); err != nil {
		return nil, err
	}
	m, err := s.membership(ctx, clubID, actor)
	if err != nil {
		return nil, err
	}
	return s.clubs.ListEvents(ctx, clubID, m == nil && !actor.IsAdmin())
}

// GetEvent hides unlisted events from non-members as if they did not exist.
func (s *clubService) GetEvent(ctx context.Context, actor domain.Actor, id uint) (*domain.ClubEvent, error) {
	ev, err := s.clubs.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Listed() || actor.IsAdmin() || ev.OrganizerID == actor.UserID {
		return ev, nil
	}
	m, err := s.membership(ctx, ev.ClubID, actor)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrEventNotFound
	}
	return ev, nil
}

// UpdateEvent is open to the organizer and the club's moderators. Moving a
// draft to published announces it.
func (s *clubService) UpdateEvent(ctx context.Context, actor domain.Actor, id uint, in ports.UpdateEventInput) (*domain.ClubEvent, error) {
	var updated *domain.ClubEvent
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		ev, club, err := s.eventForManage(ctx, actor, id)
		if err != nil {
			return err
		}

		fields, err := eventChanges(ev, in)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			updated = ev
			return nil
		}
		fields["updated_at"] = time.Now().UTC()
		if err := s.clubs.UpdateEvent(ctx, id, fields); err != nil {
			return err
		}
		if updated, err = s.clubs.FindEvent(ctx, id); err != nil {
			return err
		}
		if ev.Status != domain.EventPublished && updated.Status == domain.EventPublished {
			return s.announce(ctx, club, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func eventChanges(ev *domain.ClubEvent, in ports.UpdateEventInput) (map[string]any, error) {
	fields := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.NewFieldError("title", "title is required")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.EventType != nil {
		if !validEventTypes[*in.EventType] {
			return nil, domain.NewFieldError("event_type", "unknown event type")
		}
		fields["event_type"] = *in.EventType
	}
	if in.LocationType != nil {
		if !validLocationTypes[*in.LocationType] {
			return nil, domain.NewFieldError("location_type", "location type must be physical, virtual or hybrid")
		}
		fields["location_type"] = *in.LocationType
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.MeetingLink != nil {
		fields["meeting_link"] = *in.MeetingLink
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 1 {
			return nil, domain.NewFieldError("max_attendees", "max attendees must be at least 1")
		}
		fields["max_attendees"] = *in.MaxAttendees
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}

	start, end := ev.StartDate, ev.EndDate
	if in.StartDate != nil {
		start = in.StartDate.UTC()
		fields["start_date"] = start
	}
	if in.EndDate != nil {
		end = in.EndDate.UTC()
		fields["end_date"] = end
	}
	if (in.StartDate != nil || in.EndDate != nil) && !end.After(start) {
		return nil, domain.NewFieldError("end_date", "end date must be after the start date")
	}

	if in.Status != nil && *in.Status != ev.Status {
		if !ev.Status.CanTransitionTo(*in.Status) {
			return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, ev.Status, *in.Status)
		}
		fields["status"] = *in.Status
	}
	return fields, nil
}

func (s *clubService) DeleteEvent(ctx context.Context, actor domain.Actor, id uint) error {
	return inTx(ctx, s.tx, func(ctx context.Context) error {
		if _, _, err := s.eventForManage(ctx, actor, id); err != nil {
			return err
		}
		return s.clubs.DeleteEvent(ctx, id)
	})
}

// eventForManage loads an event and its club, failing with Forbidden unless
// the actor organised it or moderates the club.
func (s *clubService) eventForManage(ctx context.Context, actor domain.Actor, id uint) (*domain.ClubEvent, *domain.Club, error) {
	ev, err := s.clubs.FindEvent(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	club, err := s.clubs.FindByID(ctx, ev.ClubID)
	if err != nil {
		return nil, nil, err
	}
	if ev.OrganizerID == actor.UserID {
		return ev, club, nil
	}
	m, err := s.membership(ctx, club.ID, actor)
	if err != nil {
		return nil, nil, err
	}
	if !canModerate(actor, club, m) {
		return nil, nil, domain.ErrForbidden
	}
	return ev, club, nil
}

// announce fans an event_reminder out to the club's active members, the
// organizer excepted.
func (s *clubService) announce(ctx context.Context, club *domain.Club, ev *domain.ClubEvent) error {
	members, err := s.clubs.ListMembers(ctx, club.ID)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s: %q starts %s", club.Name, ev.Title, ev.StartDate.Format(time.RFC1123))
	for _, m := range members {
		if m.UserID == ev.OrganizerID {
			continue
		}
		_, err := s.notifier.Notify(ctx, domain.NotificationInput{
			UserID:   m.UserID,
			Type:     domain.NotifyEventReminder,
			Title:    "New club event",
			Message:  msg,
			Priority: domain.PriorityMedium,
			Related:  domain.Ref(domain.RelatedClubEvent, ev.ID),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
