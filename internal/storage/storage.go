// Package storage opens the configured backend and bundles the repositories
// the tracker service depends on.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/player"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/season"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Supported backends
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Repositories is the full set of repositories behind one backend
type Repositories struct {
	Players      player.Repository
	Games        game.Repository
	Sessions     session.Repository
	Memberships  membership.Repository
	Events       event.Repository
	Seasons      season.Repository
	Participants participant.Repository
}

// Config selects and configures a backend
type Config struct {
	Backend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string

	// ConnectTimeout bounds how long Open keeps retrying the first connection
	ConnectTimeout time.Duration

	Logger *logger.Logger
}

// Backend is an open storage backend
type Backend struct {
	Repositories *Repositories

	redisClient *redis.Client
	db          *gorm.DB
}

// Open connects to the configured backend and builds its repositories
func Open(ctx context.Context, cfg *Config) (*Backend, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.Backend {
	case BackendRedis, "":
		client, err := OpenRedis(ctx, &RedisConfig{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			ConnectTimeout: cfg.ConnectTimeout,
			Logger:         log,
		})
		if err != nil {
			return nil, err
		}
		repos, err := NewRedisRepositories(client)
		if err != nil {
			client.Close()
			return nil, err
		}
		return &Backend{Repositories: repos, redisClient: client}, nil

	case BackendPostgres:
		db, err := OpenPostgres(ctx, &PostgresConfig{
			DSN:            cfg.DatabaseURL,
			ConnectTimeout: cfg.ConnectTimeout,
			Logger:         log,
		})
		if err != nil {
			return nil, err
		}
		repos, err := NewPostgresRepositories(db)
		if err != nil {
			return nil, err
		}
		return &Backend{Repositories: repos, db: db}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// DB returns the gorm handle, nil for the Redis backend
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Close releases the backend's connections
func (b *Backend) Close() error {
	if b.redisClient != nil {
		return b.redisClient.Close()
	}
	if b.db != nil {
		sqlDB, err := b.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// NewRedisRepositories builds every repository on one Redis client
func NewRedisRepositories(client *redis.Client) (*Repositories, error) {
	players, err := player.NewRedis(&player.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("player repository: %w", err)
	}
	games, err := game.NewRedis(&game.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("game repository: %w", err)
	}
	sessions, err := session.NewRedis(&session.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("session repository: %w", err)
	}
	memberships, err := membership.NewRedis(&membership.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("membership repository: %w", err)
	}
	events, err := event.NewRedis(&event.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("event repository: %w", err)
	}
	seasons, err := season.NewRedis(&season.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("season repository: %w", err)
	}
	participants, err := participant.NewRedis(&participant.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("participant repository: %w", err)
	}

	return &Repositories{
		Players:      players,
		Games:        games,
		Sessions:     sessions,
		Memberships:  memberships,
		Events:       events,
		Seasons:      seasons,
		Participants: participants,
	}, nil
}

// NewPostgresRepositories builds every repository on one gorm handle
func NewPostgresRepositories(db *gorm.DB) (*Repositories, error) {
	players, err := player.NewPostgres(&player.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("player repository: %w", err)
	}
	games, err := game.NewPostgres(&game.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("game repository: %w", err)
	}
	sessions, err := session.NewPostgres(&session.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("session repository: %w", err)
	}
	memberships, err := membership.NewPostgres(&membership.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("membership repository: %w", err)
	}
	events, err := event.NewPostgres(&event.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("event repository: %w", err)
	}
	seasons, err := season.NewPostgres(&season.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("season repository: %w", err)
	}
	participants, err := participant.NewPostgres(&participant.PostgresConfig{DB: db})
	if err != nil {
		return nil, fmt.Errorf("participant repository: %w", err)
	}

	return &Repositories{
		Players:      players,
		Games:        games,
		Sessions:     sessions,
		Memberships:  memberships,
		Events:       events,
		Seasons:      seasons,
		Participants: participants,
	}, nil
}
