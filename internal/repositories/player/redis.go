package player

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
	playerKeyPrefix       = "player:"
	playerHandleKeyPrefix = "player_handle:"
)

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

// GetPlayer retrieves a player by ID
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("player ID cannot be empty")
	}

	var player models.Player
	err := redisx.GetJSON(ctx, r.client, playerKeyPrefix+input.PlayerID, &player)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// GetPlayerByHandle follows the handle index to the player record
func (r *redisRepository) GetPlayerByHandle(ctx context.Context, input *GetPlayerByHandleInput) (*models.Player, error) {
	if input == nil || input.Handle == "" {
		return nil, errors.New("handle cannot be empty")
	}

	playerID, err := r.client.Get(ctx, playerHandleKeyPrefix+input.Handle).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to resolve handle: %w", err)
	}

	return r.GetPlayer(ctx, &GetPlayerInput{PlayerID: playerID})
}

// CreatePlayer stores the player and claims its handle in one transaction
func (r *redisRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player
	if player.ID == "" || player.Handle == "" {
		return errors.New("player ID and handle cannot be empty")
	}

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	handleKey := playerHandleKeyPrefix + player.Handle
	err = redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, handleKey).Result()
		if err != nil {
			return err
		}
		if taken > 0 {
			return ErrPlayerAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, handleKey, player.ID, 0)
			pipe.Set(ctx, playerKeyPrefix+player.ID, playerJSON, 0)
			return nil
		})
		return err
	}, handleKey)
	if err != nil {
		if errors.Is(err, ErrPlayerAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to create player: %w", err)
	}

	return nil
}
