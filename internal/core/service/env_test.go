package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
	"github.com/alumnet/alumni-network/internal/infrastructure/db/sqlstore"
)

type recordingPublisher struct {
	mu    sync.Mutex
	items []*domain.Notification
}

func (p *recordingPublisher) Publish(_ uint, n *domain.Notification) {
	p.mu.Lock()
	p.items = append(p.items, n)
	p.mu.Unlock()
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// testEnv wires every service over a private SQLite database.
type testEnv struct {
	db        *gorm.DB
	users     ports.UserRepository
	notes     ports.NotificationRepository
	mentors   ports.MentorshipRepository
	publisher *recordingPublisher
	activity  *recordingActivity

	clubs         ports.ClubService
	connections   ports.ConnectionService
	projects      ports.ProjectService
	posts         ports.PostService
	notifications ports.NotificationService
	mentorships   ports.MentorshipService
	profiles      ports.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlstore.Open(sqlstore.Config{
		Driver: sqlstore.DriverSQLite,
		DSN:    "file:svc_" + name + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(db))
	t.Cleanup(func() { _ = sqlstore.Close(db) })

	log := zerolog.Nop()
	tx := sqlstore.NewTransactor(db)
	users := sqlstore.NewUserRepository(db)
	conns := sqlstore.NewConnectionRepository(db)
	clubs := sqlstore.NewClubRepository(db)
	projects := sqlstore.NewProjectRepository(db)
	posts := sqlstore.NewPostRepository(db)
	notes := sqlstore.NewNotificationRepository(db)
	mentors := sqlstore.NewMentorshipRepository(db)

	env := &testEnv{
		db:        db,
		users:     users,
		notes:     notes,
		mentors:   mentors,
		publisher: &recordingPublisher{},
		activity:  &recordingActivity{},
	}
	resolver := NewRelatedResolver(users, conns, posts, clubs, projects, mentors)
	env.notifications = NewNotificationService(notes, resolver, env.publisher, log)
	env.clubs = NewClubService(clubs, tx, env.notifications, env.activity, log)
	env.connections = NewConnectionService(conns, users, tx, env.notifications, env.activity, log)
	env.projects = NewProjectService(projects, nil, tx, env.notifications, env.activity, log)
	env.posts = NewPostService(posts, conns, tx, env.notifications, env.activity, log)
	env.mentorships = NewMentorshipService(mentors, tx, env.notifications, env.activity, log)
	env.profiles = NewUserService(users, nil, tx, env.activity, log)
	return env
}

// actor stores an active user and returns the identity it acts under.
func (e *testEnv) actor(t *testing.T, username string, userType domain.UserType) domain.Actor {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		UserType:     userType,
		Status:       domain.UserStatusActive,
		LastActive:   time.Now().UTC(),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return domain.Actor{UserID: u.ID, Username: u.Username, UserType: u.UserType}
}

func (e *testEnv) inbox(t *testing.T, a domain.Actor) []*domain.Notification {
	t.Helper()
	items, _, err := e.notifications.List(context.Background(), a, ports.ListNotificationsFilter{Limit: 100})
	require.NoError(t, err)
	return items
}
