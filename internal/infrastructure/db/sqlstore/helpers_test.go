package sqlstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(Config{
		Driver: DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		UserType:     domain.UserTypeAlumni,
		Status:       domain.UserStatusActive,
		LastActive:   time.Now().UTC(),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedClub(t *testing.T, db *gorm.DB, owner uint) *domain.Club {
	t.Helper()
	c := &domain.Club{
		Name:        "Chess",
		Description: "weekly games",
		OwnerID:     owner,
		Visibility:  domain.ClubPublic,
		Status:      domain.ClubActive,
	}
	require.NoError(t, NewClubRepository(db).Create(context.Background(), c))
	return c
}

func seedProject(t *testing.T, db *gorm.DB, creator uint, target domain.Money) *domain.Project {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Project{
		Title:        "Library fund",
		Description:  "new books",
		CreatorID:    creator,
		TargetAmount: target,
		Currency:     "USD",
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, 30),
		DurationDays: 30,
		Status:       domain.ProjectActive,
	}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p))
	return p
}

func seedPost(t *testing.T, db *gorm.DB, author uint) *domain.Post {
	t.Helper()
	p := &domain.Post{
		AuthorID:   author,
		Content:    "hello",
		PostType:   domain.PostGeneral,
		Visibility: domain.VisibilityPublic,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), p))
	return p
}
