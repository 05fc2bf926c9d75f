package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/redisx"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix        = "session:"
	currentSessionKeyPrefix = "current_session:"
	currentSessionsKey      = "current_sessions"
)

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func currentSessionKey(source models.SessionSource, gameID string) string {
	return fmt.Sprintf("%s%s:%s", currentSessionKeyPrefix, source, gameID)
}

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// GetSession retrieves a session by ID
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	var session models.Session
	if err := redisx.GetJSON(ctx, r.client, sessionKey(input.SessionID), &session); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// GetCurrentSession follows the current-session pointer of a game
func (r *redisRepository) GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*models.Session, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, currentSessionKey(input.Source, input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{SessionID: sessionID})
}

// CreateSession stores the session. A current session also claims the
// game's current-session pointer, which only one writer can hold.
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" || session.GameID == "" {
		return errors.New("session ID and game ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if !session.IsCurrent {
		if err := r.client.Set(ctx, sessionKey(session.ID), sessionJSON, 0).Err(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}

	pointerKey := currentSessionKey(session.Source, session.GameID)
	err = redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, pointerKey).Result()
		if err != nil {
			return err
		}
		if taken > 0 {
			return ErrCurrentSessionExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(session.ID), sessionJSON, 0)
			pipe.Set(ctx, pointerKey, session.ID, 0)
			pipe.SAdd(ctx, currentSessionsKey, session.ID)
			return nil
		})
		return err
	}, pointerKey)
	if err != nil {
		if errors.Is(err, ErrCurrentSessionExists) {
			return err
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// update runs a read-modify-write of one session under WATCH
func (r *redisRepository) update(ctx context.Context, sessionID string, mutate func(s *models.Session) error) (*models.Session, error) {
	key := sessionKey(sessionID)
	var result *models.Session

	err := redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		var session models.Session
		if err := redisx.GetJSON(ctx, tx, key, &session); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return err
		}

		if err := mutate(&session); err != nil {
			return err
		}

		sessionJSON, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = &session
		return nil
	}, key)

	return result, err
}

// shiftCountersScript applies a delta to the active player count of the
// session document at KEYS[1] inside Redis, so concurrent joins and leaves
// are serialized by the server instead of racing a WATCH. The count floors
// at 0. ARGV: delta, RFC 3339 event time. Returns nil when the session does
// not exist, otherwise {active_players, session_type}.
var shiftCountersScript = redis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
	return false
end
local session = cjson.decode(raw)
local active = (tonumber(session['ActivePlayers']) or 0) + tonumber(ARGV[1])
if active < 0 then
	active = 0
end
local sessionType = 'solo'
if active > 1 then
	sessionType = 'group'
end
session['ActivePlayers'] = active
session['SessionType'] = sessionType
session['LastEventAt'] = ARGV[2]
redis.call('SET', KEYS[1], cjson.encode(session))
return {active, sessionType}
`)

// UpdateCounters shifts the active player count of a session
func (r *redisRepository) UpdateCounters(ctx context.Context, input *UpdateCountersInput) (*UpdateCountersOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	reply, err := shiftCountersScript.Run(ctx, r.client,
		[]string{sessionKey(input.SessionID)},
		input.Delta, input.EventAt.Format(time.RFC3339Nano),
	).Slice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to update counters: %w", err)
	}
	if len(reply) != 2 {
		return nil, fmt.Errorf("failed to update counters: unexpected reply %v", reply)
	}

	active, ok := reply[0].(int64)
	if !ok {
		return nil, fmt.Errorf("failed to update counters: unexpected count %v", reply[0])
	}
	sessionType, ok := reply[1].(string)
	if !ok {
		return nil, fmt.Errorf("failed to update counters: unexpected type %v", reply[1])
	}

	return &UpdateCountersOutput{
		ActivePlayers: int(active),
		SessionType:   models.SessionType(sessionType),
	}, nil
}

// CloseSession closes the session if it is still current and empty. The
// current-session pointer is released in the same transaction.
func (r *redisRepository) CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	key := sessionKey(input.SessionID)
	closed := false

	err := redisx.Transact(ctx, r.client, func(tx *redis.Tx) error {
		closed = false

		var session models.Session
		if err := redisx.GetJSON(ctx, tx, key, &session); err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return err
		}
		if !session.IsCurrent || session.ActivePlayers != 0 {
			return nil
		}

		session.IsCurrent = false
		session.LastEventAt = input.ClosedAt
		session.TotalDurationMinutes = input.TotalDurationMinutes

		sessionJSON, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		pointerKey := currentSessionKey(session.Source, session.GameID)
		pointer, err := tx.Get(ctx, pointerKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, 0)
			if pointer == session.ID {
				pipe.Del(ctx, pointerKey)
			}
			pipe.SRem(ctx, currentSessionsKey, session.ID)
			return nil
		})
		if err != nil {
			return err
		}
		closed = true
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	return &CloseSessionOutput{Closed: closed}, nil
}

// LinkSeason attaches a session to a season
func (r *redisRepository) LinkSeason(ctx context.Context, input *LinkSeasonInput) error {
	if input == nil || input.SessionID == "" || input.SeasonID == "" {
		return errors.New("session ID and season ID cannot be empty")
	}

	_, err := r.update(ctx, input.SessionID, func(s *models.Session) error {
		s.SeasonID = input.SeasonID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("failed to link season: %w", err)
	}
	return nil
}

// ListCurrentSessions returns every open session, oldest first
func (r *redisRepository) ListCurrentSessions(ctx context.Context, input *ListCurrentSessionsInput) (*ListCurrentSessionsOutput, error) {
	ids, err := r.client.SMembers(ctx, currentSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list current sessions: %w", err)
	}

	if len(ids) == 0 {
		return &ListCurrentSessionsOutput{Sessions: []*models.Session{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load current sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(ids))
	for _, cmd := range cmds {
		raw, err := cmd.Result()
		if err != nil {
			// Skip sessions removed between SMEMBERS and GET
			continue
		}
		var s models.Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].FirstEventAt.Before(sessions[j].FirstEventAt)
	})

	return &ListCurrentSessionsOutput{Sessions: sessions}, nil
}
