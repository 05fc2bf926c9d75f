package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/common/redisx"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix      = "game:"
	gameTitleKeyPrefix = "game_title:"
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
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

// GetGame retrieves a game by ID
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	var game models.Game
	if err := redisx.GetJSON(ctx, r.client, gameKeyPrefix+input.GameID, &game); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// GetGameByTitle follows the title index to the game record
func (r *redisRepository) GetGameByTitle(ctx context.Context, input *GetGameByTitleInput) (*models.Game, error) {
	if input == nil || input.Title == "" {
		return nil, errors.New("title cannot be empty")
	}

	gameID, err := r.client.Get(ctx, gameTitleKeyPrefix+input.Title).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to resolve title: %w", err)
	}

	return r.GetGame(ctx, &GetGameInput{GameID: gameID})
}

// CreateGame stores the game and claims its title in one transaction
func (r *redisRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	game := input.Game
	if game.ID == "" || game.Title == "" {
		return errors.New("game ID and title cannot be empty")
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	titleKey := gameTitleKeyPrefix + game.Title
	err = redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, titleKey).Result()
		if err != nil {
			return err
		}
		if taken > 0 {
			return ErrGameAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, titleKey, game.ID, 0)
			pipe.Set(ctx, gameKeyPrefix+game.ID, gameJSON, 0)
			return nil
		})
		return err
	}, titleKey)
	if err != nil {
		if errors.Is(err, ErrGameAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}
