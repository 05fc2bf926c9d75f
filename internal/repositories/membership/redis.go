package membership

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
	membershipKeyPrefix     = "membership:"
	sessionMembersKeyPrefix = "session_members:"
)

func membershipKey(sessionID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", membershipKeyPrefix, sessionID, playerID)
}

// Config holds configuration for the Redis membership repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed membership repository
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

// GetMembership retrieves the membership of a player in a session
func (r *redisRepository) GetMembership(ctx context.Context, input *GetMembershipInput) (*models.Membership, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("session ID and player ID cannot be empty")
	}

	var m models.Membership
	if err := redisx.GetJSON(ctx, r.client, membershipKey(input.SessionID, input.PlayerID), &m); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

// CreateMembership stores the membership if the player has none in the session
func (r *redisRepository) CreateMembership(ctx context.Context, input *CreateMembershipInput) error {
	if input == nil || input.Membership == nil {
		return errors.New("input and membership cannot be nil")
	}

	m := input.Membership
	if m.SessionID == "" || m.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}

	membershipJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal membership: %w", err)
	}

	key := membershipKey(m.SessionID, m.PlayerID)
	err = redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrMembershipAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, membershipJSON, 0)
			pipe.SAdd(ctx, sessionMembersKeyPrefix+m.SessionID, m.PlayerID)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrMembershipAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// update runs a read-modify-write of one membership under WATCH. mutate
// returns false to skip the write.
func (r *redisRepository) update(ctx context.Context, sessionID, playerID string, mutate func(m *models.Membership) bool) (bool, error) {
	key := membershipKey(sessionID, playerID)
	written := false

	err := redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		written = false

		var m models.Membership
		if err := redisx.GetJSON(ctx, tx, key, &m); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrMembershipNotFound
			}
			return err
		}

		if !mutate(&m) {
			return nil
		}

		membershipJSON, err := json.Marshal(&m)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, membershipJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}
		written = true
		return nil
	}, key)

	return written, err
}

// SetActive sets the active flag if it differs from the requested value
func (r *redisRepository) SetActive(ctx context.Context, input *SetActiveInput) (*SetActiveOutput, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("session ID and player ID cannot be empty")
	}

	changed, err := r.update(ctx, input.SessionID, input.PlayerID, func(m *models.Membership) bool {
		if m.IsActive == input.Active {
			return false
		}
		m.IsActive = input.Active
		return true
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set active: %w", err)
	}

	return &SetActiveOutput{Changed: changed}, nil
}

// WriteDurations stores the reconstructed durations of a membership
func (r *redisRepository) WriteDurations(ctx context.Context, input *WriteDurationsInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}

	_, err := r.update(ctx, input.SessionID, input.PlayerID, func(m *models.Membership) bool {
		m.SoloDurationMinutes = input.SoloDurationMinutes
		m.GroupDurationMinutes = input.GroupDurationMinutes
		m.TotalDurationMinutes = input.TotalDurationMinutes
		return true
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return err
		}
		return fmt.Errorf("failed to write durations: %w", err)
	}
	return nil
}

// SetOutcome stores the status and notes of a membership
func (r *redisRepository) SetOutcome(ctx context.Context, input *SetOutcomeInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}

	_, err := r.update(ctx, input.SessionID, input.PlayerID, func(m *models.Membership) bool {
		m.Status = input.Status
		m.Notes = input.Notes
		return true
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return err
		}
		return fmt.Errorf("failed to set outcome: %w", err)
	}
	return nil
}

// ListMemberships returns every membership of a session in join order
func (r *redisRepository) ListMemberships(ctx context.Context, input *ListMembershipsInput) (*ListMembershipsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, sessionMembersKeyPrefix+input.SessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	if len(playerIDs) == 0 {
		return &ListMembershipsOutput{Memberships: []*models.Membership{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(playerIDs))
	for i, playerID := range playerIDs {
		cmds[i] = pipe.Get(ctx, membershipKey(input.SessionID, playerID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	memberships := make([]*models.Membership, 0, len(playerIDs))
	for _, cmd := range cmds {
		raw, err := cmd.Result()
		if err != nil {
			continue
		}
		var m models.Membership
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal membership: %w", err)
		}
		memberships = append(memberships, &m)
	}

	sortMemberships(memberships)
	return &ListMembershipsOutput{Memberships: memberships}, nil
}

func sortMemberships(memberships []*models.Membership) {
	sort.Slice(memberships, func(i, j int) bool {
		a, b := memberships[i], memberships[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.PlayerID < b.PlayerID
	})
}
