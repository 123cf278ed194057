package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultMaxOpenConns = 100
	memoryDSN           = "file::memory:?cache=shared"
)

// Config holds relational store connection settings.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Tracing      bool
}

// Models lists every table managed by AutoMigrate, parents first.
var Models = []any{
	&domain.User{},
	&domain.Interest{},
	&domain.UserInterest{},
	&domain.Connection{},
	&domain.Club{},
	&domain.Membership{},
	&domain.ClubPost{},
	&domain.ClubEvent{},
	&domain.Project{},
	&domain.Contribution{},
	&domain.Post{},
	&domain.PostLike{},
	&domain.PostBookmark{},
	&domain.PostComment{},
	&domain.PostShare{},
	&domain.Notification{},
	&domain.NotificationPreference{},
	&domain.MentorProfile{},
	&domain.MentorshipRequest{},
	&domain.MentorshipSession{},
}

// Open connects to the configured database and tunes the pool. SQLite is
// limited to a single connection so that transactions serialise.
func Open(cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("sqlstore: DB_DSN is required for postgres")
		}
		dialector = postgres.Open(cfg.DSN)
		gormCfg.PrepareStmt = true
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = memoryDSN
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = defaultMaxOpenConns
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if cfg.Tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, fmt.Errorf("sqlstore: tracing plugin: %w", err)
		}
	}

	log.Info().Str("driver", cfg.Driver).Bool("tracing", cfg.Tracing).Msg("connected to relational store")
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

// Ping verifies the underlying connection is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
