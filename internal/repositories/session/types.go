package session

import (
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetCurrentSessionInput identifies the open session of a game
type GetCurrentSessionInput struct {
	GameID string
	Source models.SessionSource
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	Session *models.Session
}

// UpdateCountersInput contains parameters for shifting the active count
type UpdateCountersInput struct {
	SessionID string

	// Delta is +1 for a join and -1 for a leave
	Delta int

	// EventAt becomes the session's LastEventAt
	EventAt time.Time
}

// UpdateCountersOutput is the session state after the update
type UpdateCountersOutput struct {
	ActivePlayers int
	SessionType   models.SessionType
}

// CloseSessionInput contains parameters for closing a session
type CloseSessionInput struct {
	SessionID            string
	ClosedAt             time.Time
	TotalDurationMinutes int
}

// CloseSessionOutput reports whether this call performed the close
type CloseSessionOutput struct {
	Closed bool
}

// LinkSeasonInput contains parameters for linking a session to a season
type LinkSeasonInput struct {
	SessionID string
	SeasonID  string
}

// ListCurrentSessionsInput contains parameters for listing open sessions
type ListCurrentSessionsInput struct{}

// ListCurrentSessionsOutput contains the open sessions, oldest first
type ListCurrentSessionsOutput struct {
	Sessions []*models.Session
}
