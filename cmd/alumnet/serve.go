package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "github.com/alumnet/alumni-network/docs"
	"github.com/alumnet/alumni-network/internal/api"
	"github.com/alumnet/alumni-network/internal/api/middleware"
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
	"github.com/alumnet/alumni-network/internal/core/service"
	"github.com/alumnet/alumni-network/internal/infrastructure/db/mongo"
	"github.com/alumnet/alumni-network/internal/infrastructure/db/redis"
	"github.com/alumnet/alumni-network/internal/infrastructure/db/sqlstore"
	"github.com/alumnet/alumni-network/internal/infrastructure/http/handlers"
	"github.com/alumnet/alumni-network/internal/infrastructure/queue"
	"github.com/alumnet/alumni-network/internal/infrastructure/realtime"
	"github.com/alumnet/alumni-network/internal/pkg/config"
	"github.com/alumnet/alumni-network/pkg/logger"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, log)
		},
	}
}

func sqlStoreConfig(cfg *config.Config) sqlstore.Config {
	return sqlstore.Config{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		Tracing:      cfg.DB.Tracing,
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := handlers.NewReadinessHandler()

	// --- Relational store ---
	db, err := sqlstore.Open(sqlStoreConfig(cfg), log)
	if err != nil {
		return err
	}
	defer closeSQL(db, log)
	if cfg.DB.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	readiness.Add("sql", func(ctx context.Context) error { return sqlstore.Ping(ctx, db) })

	// --- Activity log (optional) ---
	var (
		activityRepo     ports.ActivityRepository
		activityRecorder ports.ActivityRecorder
	)
	if cfg.Mongo.Enabled {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(client); err != nil {
				log.Error().Err(err).Msg("disconnect mongo")
			}
		}()
		readiness.Add("mongo", func(ctx context.Context) error { return mongo.Ping(ctx, mdb) })

		activityRepo = mongo.NewActivityRepository(mdb)
		dispatcher := queue.NewDispatcher(cfg.Activity.Workers, cfg.Activity.Buffer, activityRepo, logger.Component("activity"))
		dispatcher.Start(ctx)
		defer dispatcher.Stop()
		activityRecorder = dispatcher
		log.Info().Str("database", cfg.Mongo.Database).Int("workers", cfg.Activity.Workers).Msg("activity log enabled")
	} else {
		readiness.Disabled("mongo")
	}

	// --- Cache and idempotency (optional) ---
	var (
		idempotency  ports.IdempotencyStore
		summaryCache ports.SummaryCache
	)
	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		readiness.Add("redis", func(ctx context.Context) error { return redis.Ping(ctx, rdb) })

		idempotency = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		summaryCache = redis.NewSummaryCache(rdb, cfg.Redis.AnalyticsCacheTTL)
	} else {
		readiness.Disabled("redis")
	}

	// --- Realtime ---
	hub := realtime.NewHub(logger.Component("realtime"))
	defer hub.Close()

	// --- Repositories and services ---
	users := sqlstore.NewUserRepository(db)
	connections := sqlstore.NewConnectionRepository(db)
	clubs := sqlstore.NewClubRepository(db)
	projects := sqlstore.NewProjectRepository(db)
	posts := sqlstore.NewPostRepository(db)
	mentorships := sqlstore.NewMentorshipRepository(db)
	tx := sqlstore.NewTransactor(db)

	resolver := service.NewRelatedResolver(users, connections, posts, clubs, projects, mentorships)
	notifications := service.NewNotificationService(sqlstore.NewNotificationRepository(db), resolver, hub, log)

	svc := api.Services{
		Auth:          service.NewAuthService(users, activityRecorder, cfg.JWTSecret, cfg.JWTTTL, log),
		Users:         service.NewUserService(users, activityRepo, tx, activityRecorder, log),
		Connections:   service.NewConnectionService(connections, users, tx, notifications, activityRecorder, log),
		Clubs:         service.NewClubService(clubs, tx, notifications, activityRecorder, log),
		Projects:      service.NewProjectService(projects, idempotency, tx, notifications, activityRecorder, log),
		Posts:         service.NewPostService(posts, connections, tx, notifications, activityRecorder, log),
		Mentorship:    service.NewMentorshipService(mentorships, tx, notifications, activityRecorder, log),
		Notifications: notifications,
		Analytics:     service.NewAnalyticsService(sqlstore.NewAnalyticsRepository(db), summaryCache, log),
	}

	e := api.NewRouter(svc, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
		Readiness: readiness,
		Streamer:  hub,
		Upgrader:  realtime.NewUpgrader(cfg.WS.AllowedOrigins),

		AccountStatus: accountStatus(users),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("version", version).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	// Websocket streams are hijacked and not tracked by Shutdown; the
	// deferred hub.Close ends them.
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}

// accountStatus reads the live status so a suspension takes effect before
// the user's token expires.
func accountStatus(users ports.UserRepository) middleware.StatusLookup {
	return func(ctx context.Context, userID uint) (domain.UserStatus, error) {
		u, err := users.FindByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return u.Status, nil
	}
}

func closeSQL(db *gorm.DB, log zerolog.Logger) {
	if err := sqlstore.Close(db); err != nil {
		log.Error().Err(err).Msg("close sql")
	}
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("close redis")
	}
}
