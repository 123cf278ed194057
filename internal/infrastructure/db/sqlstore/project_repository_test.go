package sqlstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

func seedContribution(t *testing.T, repo ports.ProjectRepository, projectID, userID uint, amount domain.Money) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.InsertContribution(ctx, &domain.Contribution{
		ProjectID:        projectID,
		ContributorID:    userID,
		Amount:           amount,
		ContributionType: domain.ContributionOneTime,
		PaymentStatus:    domain.PaymentCompleted,
	}))
	require.NoError(t, repo.ApplyContribution(ctx, projectID, amount, 1))
}

func TestProjectRepository_ApplyContributionIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)
	creator := seedUser(t, db, "creator")
	project := seedProject(t, db, creator.ID, 100_000)

	const writers = 32
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(amount domain.Money) {
			defer wg.Done()
			assert.NoError(t, repo.ApplyContribution(ctx, project.ID, amount, 1))
		}(domain.Money(100 + i))
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	// 32 writers adding 100..131
	assert.Equal(t, domain.Money(writers*100+writers*(writers-1)/2), got.CurrentAmount)
	assert.Equal(t, int64(writers), got.BackersCount)
}

func TestProjectRepository_HasContributed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)
	creator := seedUser(t, db, "creator")
	backer := seedUser(t, db, "backer")
	project := seedProject(t, db, creator.ID, 10_000)

	seen, err := repo.HasContributed(ctx, project.ID, backer.ID)
	require.NoError(t, err)
	assert.False(t, seen)

	seedContribution(t, repo, project.ID, backer.ID, 500)

	seen, err = repo.HasContributed(ctx, project.ID, backer.ID)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestProjectRepository_ApplyContribution_UnknownProject(t *testing.T) {
	db := newTestDB(t)
	err := NewProjectRepository(db).ApplyContribution(context.Background(), 99, 100, 1)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepository_ListAndStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)
	creator := seedUser(t, db, "creator")
	backer := seedUser(t, db, "backer")
	active := seedProject(t, db, creator.ID, 10_000)
	draft := seedProject(t, db, creator.ID, 5_000)
	require.NoError(t, repo.Update(ctx, draft.ID, map[string]any{"status": domain.ProjectDraft, "updated_at": time.Now()}))

	seedContribution(t, repo, active.ID, backer.ID, 2_500)

	projects, total, err := repo.List(ctx, ports.ListProjectsFilter{Status: string(domain.ProjectActive)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, projects, 1)
	assert.Equal(t, active.ID, projects[0].ID)

	mine, err := repo.ListContributionsBy(ctx, backer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.ActiveProjects)
	assert.Equal(t, domain.Money(2_500), stats.TotalRaised)
	assert.Equal(t, int64(1), stats.TotalContributions)
}

func TestProjectRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewProjectRepository(db).FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
