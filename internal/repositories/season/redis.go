package season

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
	seasonKeyPrefix      = "season:"
	gameSeasonsKeyPrefix = "game_seasons:"
)

// Config holds configuration for the Redis season repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed season repository
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

// CreateSeason stores the season and indexes it under its game
func (r *redisRepository) CreateSeason(ctx context.Context, input *CreateSeasonInput) error {
	if input == nil || input.Season == nil {
		return errors.New("input and season cannot be nil")
	}

	season := input.Season
	if season.ID == "" || season.GameID == "" {
		return errors.New("season ID and game ID cannot be empty")
	}

	seasonJSON, err := json.Marshal(season)
	if err != nil {
		return fmt.Errorf("failed to marshal season: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, seasonKeyPrefix+season.ID, seasonJSON, 0)
		pipe.SAdd(ctx, gameSeasonsKeyPrefix+season.GameID, season.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}

	return nil
}

// GetSeason retrieves a season by ID
func (r *redisRepository) GetSeason(ctx context.Context, input *GetSeasonInput) (*models.Season, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	var season models.Season
	if err := redisx.GetJSON(ctx, r.client, seasonKeyPrefix+input.SeasonID, &season); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &season, nil
}

// FindActiveSeason scans the game's seasons for an active one covering At
func (r *redisRepository) FindActiveSeason(ctx context.Context, input *FindActiveSeasonInput) (*models.Season, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	seasons, err := r.loadGameSeasons(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	var found *models.Season
	for _, s := range seasons {
		if !s.IsActive || !s.Contains(input.At) {
			continue
		}
		if found == nil || s.StartedAt.After(found.StartedAt) {
			found = s
		}
	}

	if found == nil {
		return nil, ErrSeasonNotFound
	}
	return found, nil
}

// ListSeasonsByGame returns every season of a game, oldest first
func (r *redisRepository) ListSeasonsByGame(ctx context.Context, input *ListSeasonsByGameInput) (*ListSeasonsByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	seasons, err := r.loadGameSeasons(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].StartedAt.Before(seasons[j].StartedAt)
	})

	return &ListSeasonsByGameOutput{Seasons: seasons}, nil
}

func (r *redisRepository) loadGameSeasons(ctx context.Context, gameID string) ([]*models.Season, error) {
	ids, err := r.client.SMembers(ctx, gameSeasonsKeyPrefix+gameID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}

	seasons := make([]*models.Season, 0, len(ids))
	if len(ids) == 0 {
		return seasons, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, seasonKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load seasons: %w", err)
	}

	for _, cmd := range cmds {
		raw, err := cmd.Result()
		if err != nil {
			continue
		}
		var s models.Season
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal season: %w", err)
		}
		seasons = append(seasons, &s)
	}

	return seasons, nil
}

// FinishSeason deactivates the season under WATCH so only one caller wins
func (r *redisRepository) FinishSeason(ctx context.Context, input *FinishSeasonInput) (*models.Season, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	key := seasonKeyPrefix + input.SeasonID
	var finished *models.Season

	err := redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		var season models.Season
		if err := redisx.GetJSON(ctx, tx, key, &season); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSeasonNotFound
			}
			return err
		}
		if !season.IsActive {
			return ErrSeasonNotActive
		}

		endedAt := input.EndedAt
		season.IsActive = false
		season.EndedAt = &endedAt

		seasonJSON, err := json.Marshal(&season)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, seasonJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}
		finished = &season
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, ErrSeasonNotFound) || errors.Is(err, ErrSeasonNotActive) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to finish season: %w", err)
	}

	return finished, nil
}
