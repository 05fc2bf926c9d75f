package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

// sessionEventsKeyPrefix prefixes the per-session event list
const sessionEventsKeyPrefix = "session_events:"

// Config holds configuration for the Redis event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis lists
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event repository
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

// AppendEvent pushes the event onto the session's list
func (r *redisRepository) AppendEvent(ctx context.Context, input *AppendEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}
	if input.Event.SessionID == "" || input.Event.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}
	if !input.Event.Kind.IsValid() {
		return fmt.Errorf("invalid event kind %q", input.Event.Kind)
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.RPush(ctx, sessionEventsKeyPrefix+input.Event.SessionID, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ListEvents reads the session's list and orders it by timestamp
func (r *redisRepository) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	raws, err := r.client.LRange(ctx, sessionEventsKeyPrefix+input.SessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*models.SessionEvent, 0, len(raws))
	for _, raw := range raws {
		var e models.SessionEvent
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		events = append(events, &e)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return &ListEventsOutput{Events: events}, nil
}
