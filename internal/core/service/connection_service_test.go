package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func TestConnectionService_RequestAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.actor(t, "alice", domain.UserTypeAlumni)
	bob := env.actor(t, "bob", domain.UserTypeAlumni)

	c, err := env.connections.Request(ctx, alice, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionPending, c.Status)

	_, err = env.connections.Request(ctx, alice, bob.UserID)
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	pending, err := env.connections.ListPending(ctx, bob)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	inbox := env.inbox(t, bob)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotifyConnectionRequest, inbox[0].NotificationType)
	assert.Equal(t, domain.Ref(domain.RelatedConnection, c.ID), inbox[0].Related)

	_, err = env.connections.Respond(ctx, alice, c.ID, domain.ActionAccept)
	assert.ErrorIs(t, err, domain.ErrConnectionNotFound, "only the recipient may respond")

	accepted, err := env.connections.Respond(ctx, bob, c.ID, domain.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionAccepted, accepted.Status)

	_, err = env.connections.Respond(ctx, bob, c.ID, domain.ActionReject)
	assert.ErrorIs(t, err, domain.ErrConnectionNotFound, "accepted is terminal")

	list, err := env.connections.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.Len(t, env.inbox(t, alice), 1)
	assert.Equal(t, 2, env.publisher.count())
}

func TestConnectionService_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.actor(t, "alice", domain.UserTypeAlumni)

	_, err := env.connections.Request(ctx, alice, alice.UserID)
	assert.ErrorIs(t, err, domain.ErrSelfConnection)

	_, err = env.connections.Request(ctx, alice, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = env.connections.Respond(ctx, alice, 1, "ignore")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
