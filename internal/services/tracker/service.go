package tracker

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/common/clock"
	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/common/uuid"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	eventRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	gameRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	membershipRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	participantRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	playerRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/player"
	seasonRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/season"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

// Config holds the dependencies of the tracker service
type Config struct {
	// APIKey is the shared secret event senders must present
	APIKey string

	PlayerRepo      playerRepo.Repository
	GameRepo        gameRepo.Repository
	SessionRepo     sessionRepo.Repository
	MembershipRepo  membershipRepo.Repository
	EventRepo       eventRepo.Repository
	SeasonRepo      seasonRepo.Repository
	ParticipantRepo participantRepo.Repository

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *logger.Logger
}

// service implements the Service interface
type service struct {
	apiKey          string
	playerRepo      playerRepo.Repository
	gameRepo        gameRepo.Repository
	sessionRepo     sessionRepo.Repository
	membershipRepo  membershipRepo.Repository
	eventRepo       eventRepo.Repository
	seasonRepo      seasonRepo.Repository
	participantRepo participantRepo.Repository
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	log             *logger.Logger
}

// New creates a new tracker service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.APIKey == "" {
		return nil, ErrNilAPIKey
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.MembershipRepo == nil {
		return nil, ErrNilMembershipRepo
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.SeasonRepo == nil {
		return nil, ErrNilSeasonRepo
	}
	if cfg.ParticipantRepo == nil {
		return nil, ErrNilParticipantRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &service{
		apiKey:          cfg.APIKey,
		playerRepo:      cfg.PlayerRepo,
		gameRepo:        cfg.GameRepo,
		sessionRepo:     cfg.SessionRepo,
		membershipRepo:  cfg.MembershipRepo,
		eventRepo:       cfg.EventRepo,
		seasonRepo:      cfg.SeasonRepo,
		participantRepo: cfg.ParticipantRepo,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		log:             log.With("service", "tracker"),
	}, nil
}

// storageFailure wraps a repository error so callers can match ErrStorageFailure
func storageFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}

// RecordEvent validates and applies one join or leave event
func (s *service) RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidPayload)
	}
	if subtle.ConstantTimeCompare([]byte(input.Token), []byte(s.apiKey)) != 1 {
		return nil, ErrUnauthorized
	}
	if input.PlayerHandle == "" || input.GameTitle == "" || input.EventKind == "" {
		return nil, fmt.Errorf("%w: player handle, game title and event kind are required", ErrInvalidPayload)
	}
	if !input.EventKind.IsValid() {
		return nil, fmt.Errorf("%w: event kind must be %q or %q", ErrInvalidPayload, models.EventKindJoined, models.EventKindLeave)
	}

	player, err := s.findOrCreatePlayer(ctx, input.PlayerHandle)
	if err != nil {
		return nil, err
	}
	game, err := s.findOrCreateGame(ctx, input.GameTitle)
	if err != nil {
		return nil, err
	}

	log := s.log.With("player_id", player.ID, "game_id", game.ID, "event_kind", input.EventKind)

	var output *RecordEventOutput
	switch input.EventKind {
	case models.EventKindJoined:
		output, err = s.join(ctx, log, player, game)
	default:
		output, err = s.leave(ctx, log, player, game)
	}
	if err != nil {
		if errors.Is(err, ErrStorageFailure) {
			log.Error("failed to record event", "error", err)
		}
		return nil, err
	}

	output.GameID = game.ID
	output.GameTitle = game.Title
	output.PlayerID = player.ID
	return output, nil
}
