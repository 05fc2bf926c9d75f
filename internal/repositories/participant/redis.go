package participant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Draft-Lab/panela-tracker/internal/common/redisx"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	participantKeyPrefix        = "season_participant:"
	seasonParticipantsKeyPrefix = "season_participants:"
)

func participantKey(seasonID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", participantKeyPrefix, seasonID, playerID)
}

// Config holds configuration for the Redis participant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed participant repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetParticipant retrieves a player's totals within a season
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.SeasonParticipant, error) {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return nil, errors.New("season ID and player ID cannot be empty")
	}

	var p models.SeasonParticipant
	if err := redisx.GetJSON(ctx, r.client, participantKey(input.SeasonID, input.PlayerID), &p); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &p, nil
}

// CreateParticipant enrolls the player if they are not enrolled yet
func (r *redisRepository) CreateParticipant(ctx context.Context, input *CreateParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant
	if p.SeasonID == "" || p.PlayerID == "" {
		return errors.New("season ID and player ID cannot be empty")
	}

	participantJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	key := participantKey(p.SeasonID, p.PlayerID)
	err = redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrParticipantAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, participantJSON, 0)
			pipe.SAdd(ctx, seasonParticipantsKeyPrefix+p.SeasonID, p.PlayerID)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrParticipantAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}

	return nil
}

func (r *redisRepository) update(ctx context.Context, seasonID, playerID string, mutate func(p *models.SeasonParticipant)) error {
	key := participantKey(seasonID, playerID)

	return redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		var p models.SeasonParticipant
		if err := redisx.GetJSON(ctx, tx, key, &p); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrParticipantNotFound
			}
			return err
		}

		mutate(&p)

		participantJSON, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, participantJSON, 0)
			return nil
		})
		return err
	}, key)
}

// IncrementParticipant adds to a participant's totals
func (r *redisRepository) IncrementParticipant(ctx context.Context, input *IncrementParticipantInput) error {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return errors.New("season ID and player ID cannot be empty")
	}

	err := r.update(ctx, input.SeasonID, input.PlayerID, func(p *models.SeasonParticipant) {
		p.TotalSessions += input.Sessions
		p.TotalDurationMinutes += input.TotalDurationMinutes
		p.SoloDurationMinutes += input.SoloDurationMinutes
		p.GroupDurationMinutes += input.GroupDurationMinutes
	})
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return err
		}
		return fmt.Errorf("failed to increment participant: %w", err)
	}
	return nil
}

// SetOutcome stores the final status of a participant
func (r *redisRepository) SetOutcome(ctx context.Context, input *SetOutcomeInput) error {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return errors.New("season ID and player ID cannot be empty")
	}

	err := r.update(ctx, input.SeasonID, input.PlayerID, func(p *models.SeasonParticipant) {
		at := input.At
		p.Status = input.Status
		p.Notes = input.Notes
		p.StatusUpdatedAt = &at
	})
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return err
		}
		return fmt.Errorf("failed to set participant outcome: %w", err)
	}
	return nil
}

// ListParticipants returns every participant of a season
func (r *redisRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, seasonParticipantsKeyPrefix+input.SeasonID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*models.SeasonParticipant, 0, len(playerIDs))
	if len(playerIDs) == 0 {
		return &ListParticipantsOutput{Participants: participants}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(playerIDs))
	for i, playerID := range playerIDs {
		cmds[i] = pipe.Get(ctx, participantKey(input.SeasonID, playerID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	for _, cmd := range cmds {
		raw, err := cmd.Result()
		if err != nil {
			continue
		}
		var p models.SeasonParticipant
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
		}
		participants = append(participants, &p)
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].PlayerID < participants[j].PlayerID
	})

	return &ListParticipantsOutput{Participants: participants}, nil
}
