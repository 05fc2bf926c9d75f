package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultConnectTimeout = 30 * time.Second

// RedisConfig holds connection settings for Redis
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
	Logger         *logger.Logger
}

// PostgresConfig holds connection settings for Postgres
type PostgresConfig struct {
	DSN            string
	ConnectTimeout time.Duration
	Logger         *logger.Logger
}

// retryConnect retries connect with exponential backoff until it succeeds,
// the context ends or timeout elapses
func retryConnect(ctx context.Context, timeout time.Duration, log *logger.Logger, target string, connect func() error) error {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = timeout

	return backoff.RetryNotify(connect, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		log.Warn("storage not reachable, retrying", "target", target, "error", err, "retry_in", wait.String())
	})
}

// OpenRedis creates a Redis client and waits until the server answers PING
func OpenRedis(ctx context.Context, cfg *RedisConfig) (*redis.Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := retryConnect(ctx, cfg.ConnectTimeout, log, "redis", func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("connected to redis", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

// OpenPostgres opens a gorm handle and waits until the database answers
func OpenPostgres(ctx context.Context, cfg *PostgresConfig) (*gorm.DB, error) {
	if cfg == nil || cfg.DSN == "" {
		return nil, errors.New("database URL cannot be empty")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	gormLog := gormlogger.New(gormWriter{log: log}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	var db *gorm.DB
	err := retryConnect(ctx, cfg.ConnectTimeout, log, "postgres", func() error {
		opened, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
			TranslateError: true,
			Logger:         gormLog,
		})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return err
		}
		db = opened
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	log.Info("connected to postgres")
	return db, nil
}

// gormWriter routes gorm's log lines into the structured logger
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.SugaredLogger.Warnf(format, args...)
}
