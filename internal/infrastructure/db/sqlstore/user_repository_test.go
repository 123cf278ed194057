package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

func TestUserRepository_FindAndExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	u := seedUser(t, db, "alice")

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByID(ctx, u.ID+1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "someone@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ListDefaultsToActive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	seedUser(t, db, "alice")
	pending := seedUser(t, db, "bob")
	require.NoError(t, repo.Update(ctx, pending.ID, map[string]any{"status": domain.UserStatusPending, "company": "Acme"}))

	users, total, err := repo.List(ctx, ports.ListUsersFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	users, _, err = repo.List(ctx, ports.ListUsersFilter{Status: string(domain.UserStatusPending), Search: "acm"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
}

func TestUserRepository_ReplaceInterests(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	u := seedUser(t, db, "alice")

	golang := &domain.Interest{Name: "Go", Category: "technology"}
	chess := &domain.Interest{Name: "Chess", Category: "games"}
	require.NoError(t, db.Create(golang).Error)
	require.NoError(t, db.Create(chess).Error)

	require.NoError(t, repo.ReplaceInterests(ctx, u.ID, []domain.UserInterest{
		{InterestID: golang.ID, ProficiencyLevel: 4},
		{InterestID: chess.ID, ProficiencyLevel: 2},
	}))
	require.NoError(t, repo.ReplaceInterests(ctx, u.ID, []domain.UserInterest{
		{InterestID: chess.ID, ProficiencyLevel: 5},
	}))

	mine, err := repo.ListUserInterests(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Chess", mine[0].Interest.Name)
	assert.Equal(t, 5, mine[0].ProficiencyLevel)

	err = repo.ReplaceInterests(ctx, u.ID, []domain.UserInterest{{InterestID: 999, ProficiencyLevel: 1}})
	assert.ErrorIs(t, err, domain.ErrInterestNotFound)

	all, err := repo.ListInterests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	conns := NewConnectionRepository(db)
	c := &domain.Connection{FromUserID: a.ID, ToUserID: b.ID, Status: domain.ConnectionPending}
	require.NoError(t, conns.Create(ctx, c))
	_, err := conns.Resolve(ctx, c.ID, b.ID, domain.ConnectionAccepted)
	require.NoError(t, err)
	seedPost(t, db, a.ID)
	seedProject(t, db, a.ID, 1000)

	stats, err := NewUserRepository(db).Stats(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStats{Connections: 1, Posts: 1, Projects: 1}, *stats)
}
