package cli

import (
	"context"
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/common/clock"
	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/common/uuid"
	"github.com/Draft-Lab/panela-tracker/internal/config"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
	"github.com/Draft-Lab/panela-tracker/internal/storage"
)

// app is everything a command needs once configuration is loaded
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	backend *storage.Backend
	clock   clock.Clock
	tracker tracker.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	backend, err := storage.Open(ctx, &storage.Config{
		Backend:        cfg.StoreBackend,
		RedisAddr:      cfg.RedisAddr,
		RedisPassword:  cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DatabaseURL:    cfg.DatabaseURL,
		ConnectTimeout: cfg.ConnectTimeout,
		Logger:         log,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StoreBackend, err)
	}

	// commands other than serve never check event tokens
	ids := uuid.New()
	apiKey := cfg.BotAPIKey
	if apiKey == "" {
		apiKey = ids.NewUUID()
	}

	clk := clock.New()
	repos := backend.Repositories
	svc, err := tracker.New(&tracker.Config{
		APIKey:          apiKey,
		PlayerRepo:      repos.Players,
		GameRepo:        repos.Games,
		SessionRepo:     repos.Sessions,
		MembershipRepo:  repos.Memberships,
		EventRepo:       repos.Events,
		SeasonRepo:      repos.Seasons,
		ParticipantRepo: repos.Participants,
		Clock:           clk,
		UUIDGenerator:   ids,
		Logger:          log,
	})
	if err != nil {
		backend.Close()
		log.Sync()
		return nil, fmt.Errorf("failed to create tracker service: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		backend: backend,
		clock:   clk,
		tracker: svc,
	}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.log.Warn("failed to close storage", "error", err)
	}
	a.log.Sync()
}
