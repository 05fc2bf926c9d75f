package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/session Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for session persistence. Implementations
// guarantee at most one current session per (game, source).
type Repository interface {
	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetCurrentSession retrieves the open session for a game and source
	GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*models.Session, error)

	// CreateSession persists a new session. Returns ErrCurrentSessionExists if
	// the session is current and another current one exists for its game and source.
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// UpdateCounters atomically shifts the active player count, floored at
	// zero, and recomputes the session type
	UpdateCounters(ctx context.Context, input *UpdateCountersInput) (*UpdateCountersOutput, error)

	// CloseSession marks a current session with no active players as closed.
	// Exactly one caller observes Closed for a given session.
	CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error)

	// LinkSeason attaches a session to a season
	LinkSeason(ctx context.Context, input *LinkSeasonInput) error

	// ListCurrentSessions returns every open session
	ListCurrentSessions(ctx context.Context, input *ListCurrentSessionsInput) (*ListCurrentSessionsOutput, error)
}
