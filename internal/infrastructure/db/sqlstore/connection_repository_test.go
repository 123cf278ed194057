package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func TestConnectionRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewConnectionRepository(db)
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &domain.Connection{FromUserID: a.ID, ToUserID: b.ID, Status: domain.ConnectionPending}))

	err := repo.Create(ctx, &domain.Connection{FromUserID: a.ID, ToUserID: b.ID, Status: domain.ConnectionPending})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// the reverse direction is a different ordered pair
	assert.NoError(t, repo.Create(ctx, &domain.Connection{FromUserID: b.ID, ToUserID: a.ID, Status: domain.ConnectionPending}))
}

func TestConnectionRepository_Resolve(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewConnectionRepository(db)
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	c := &domain.Connection{FromUserID: a.ID, ToUserID: b.ID, Status: domain.ConnectionPending}
	require.NoError(t, repo.Create(ctx, c))

	// only the addressee may resolve
	_, err := repo.Resolve(ctx, c.ID, a.ID, domain.ConnectionAccepted)
	assert.ErrorIs(t, err, domain.ErrConnectionNotFound)

	got, err := repo.Resolve(ctx, c.ID, b.ID, domain.ConnectionRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionRejected, got.Status)
	require.NotNil(t, got.FromUser)
	assert.Equal(t, "alice", got.FromUser.Username)

	// resolved edges never move again
	_, err = repo.Resolve(ctx, c.ID, b.ID, domain.ConnectionAccepted)
	assert.ErrorIs(t, err, domain.ErrConnectionNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnectionRepository_Listings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewConnectionRepository(db)
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	c := seedUser(t, db, "carol")

	ab := &domain.Connection{FromUserID: a.ID, ToUserID: b.ID, Status: domain.ConnectionPending}
	require.NoError(t, repo.Create(ctx, ab))
	require.NoError(t, repo.Create(ctx, &domain.Connection{FromUserID: c.ID, ToUserID: a.ID, Status: domain.ConnectionPending}))
	_, err := repo.Resolve(ctx, ab.ID, b.ID, domain.ConnectionAccepted)
	require.NoError(t, err)

	accepted, err := repo.ListAccepted(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, a.ID, accepted[0].Other(b.ID))

	pending, err := repo.ListPendingFor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, c.ID, pending[0].FromUserID)

	ids, err := repo.ConnectedUserIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, ids)
}
