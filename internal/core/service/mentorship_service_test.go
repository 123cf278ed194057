package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

func TestMentorshipService_RequestAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor := env.actor(t, "mentor", domain.UserTypeAlumni)
	mentee := env.actor(t, "mentee", domain.UserTypeStudent)

	_, err := env.mentorships.Request(ctx, mentee, ports.MentorshipRequestInput{MentorID: mentor.UserID, Subject: "s", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrMentorNotFound)

	profile, err := env.mentorships.UpsertProfile(ctx, mentor, ports.MentorProfileInput{
		Bio:            "ten years in data engineering",
		ExpertiseAreas: []string{"data", "career"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityAvailable, profile.Availability)
	assert.Equal(t, 3, profile.MaxMentees)

	_, err = env.mentorships.Request(ctx, mentor, ports.MentorshipRequestInput{MentorID: mentor.UserID, Subject: "s", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrSelfMentorship)

	req, err := env.mentorships.Request(ctx, mentee, ports.MentorshipRequestInput{
		MentorID: mentor.UserID,
		Subject:  "Career change",
		Message:  "moving into data",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MentorshipPending, req.Status)

	_, err = env.mentorships.Request(ctx, mentee, ports.MentorshipRequestInput{MentorID: mentor.UserID, Subject: "again", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrDuplicateMentorship)

	_, err = env.mentorships.Respond(ctx, mentee, req.ID, domain.ActionAccept, "")
	assert.ErrorIs(t, err, domain.ErrMentorshipNotFound, "only the mentor may respond")

	accepted, err := env.mentorships.Respond(ctx, mentor, req.ID, domain.ActionAccept, "happy to help")
	require.NoError(t, err)
	assert.Equal(t, domain.MentorshipAccepted, accepted.Status)
	assert.NotNil(t, accepted.StartedAt)

	_, err = env.mentorships.Respond(ctx, mentor, req.ID, domain.ActionAccept, "")
	assert.ErrorIs(t, err, domain.ErrMentorshipNotFound)

	profile, err = env.mentorships.GetProfile(ctx, mentor.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.TotalMentees)

	inbox := env.inbox(t, mentee)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotifyMentorshipAccepted, inbox[0].NotificationType)
	assert.Contains(t, env.activity.kinds(), domain.ActivityMentorshipRequested)
}

func TestMentorshipService_Sessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor := env.actor(t, "mentor", domain.UserTypeAlumni)
	mentee := env.actor(t, "mentee", domain.UserTypeStudent)
	outsider := env.actor(t, "outsider", domain.UserTypeStudent)

	_, err := env.mentorships.UpsertProfile(ctx, mentor, ports.MentorProfileInput{Bio: "systems"})
	require.NoError(t, err)
	req, err := env.mentorships.Request(ctx, mentee, ports.MentorshipRequestInput{MentorID: mentor.UserID, Subject: "s", Message: "m"})
	require.NoError(t, err)

	schedule := ports.ScheduleSessionInput{
		Title:       "Kickoff",
		SessionType: domain.SessionVideoCall,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
	_, err = env.mentorships.ScheduleSession(ctx, mentee, req.ID, schedule)
	assert.ErrorIs(t, err, domain.ErrMentorshipNotAccepted)

	_, err = env.mentorships.Respond(ctx, mentor, req.ID, domain.ActionAccept, "")
	require.NoError(t, err)

	session, err := env.mentorships.ScheduleSession(ctx, mentee, req.ID, schedule)
	require.NoError(t, err)
	assert.Equal(t, 60, session.DurationMinutes)
	assert.Equal(t, domain.SessionScheduled, session.Status)

	_, err = env.mentorships.StartSession(ctx, outsider, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = env.mentorships.EndSession(ctx, mentor, session.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	started, err := env.mentorships.StartSession(ctx, mentor, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, started.Status)

	ended, err := env.mentorships.EndSession(ctx, mentee, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, ended.Status)
	require.NotNil(t, ended.ActualDurationMinutes)
	assert.Zero(t, *ended.ActualDurationMinutes)

	profile, err := env.mentorships.GetProfile(ctx, mentor.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.TotalSessions)

	_, err = env.mentorships.ListSessions(ctx, outsider, req.ID)
	assert.ErrorIs(t, err, domain.ErrMentorshipNotFound)
	sessions, err := env.mentorships.ListSessions(ctx, mentee, req.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	done, err := env.mentorships.Complete(ctx, mentee, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MentorshipCompleted, done.Status)

	_, err = env.mentorships.Complete(ctx, mentee, req.ID)
	assert.ErrorIs(t, err, domain.ErrMentorshipNotAccepted)
}
