package tracker

import (
	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// RecordEventInput is one event delivered by the chat bot
type RecordEventInput struct {
	// Token must match the configured shared secret
	Token        string
	PlayerHandle string
	GameTitle    string
	EventKind    models.EventKind
}

// RecordEventOutput describes the session after the event was applied
type RecordEventOutput struct {
	SessionID     string
	GameID        string
	GameTitle     string
	PlayerID      string
	ActivePlayers int
	SessionType   models.SessionType

	// AlreadyActive is set when a join arrived for a player who was already
	// active; nothing was changed
	AlreadyActive bool

	// SessionFinished is set when this event closed the session
	SessionFinished      bool
	TotalDurationMinutes int
	SeasonID             string
}

// Outcome is a final status with optional notes
type Outcome struct {
	Status string
	Notes  string
}

// FinishSessionInput contains parameters for finishing a session by hand
type FinishSessionInput struct {
	SessionID string

	// Outcomes maps player ID to that player's outcome
	Outcomes map[string]Outcome
}

// FinishSessionOutput contains the finished session
type FinishSessionOutput struct {
	Session     *models.Session
	Memberships []*models.Membership
}

// RecomputeDurationsInput contains parameters for recomputing durations
type RecomputeDurationsInput struct {
	SessionID string
}

// RecomputeDurationsOutput contains the durations written per player
type RecomputeDurationsOutput struct {
	Durations []*PlayerDurations
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains a session and its memberships
type GetSessionOutput struct {
	Session     *models.Session
	Game        *models.Game
	Memberships []*models.Membership

	// Players maps player ID to the member's player record
	Players map[string]*models.Player
}

// ListCurrentSessionsInput contains parameters for listing current sessions
type ListCurrentSessionsInput struct{}

// CurrentSession is a session in progress with its game
type CurrentSession struct {
	Session *models.Session
	Game    *models.Game
}

// ListCurrentSessionsOutput contains the sessions in progress
type ListCurrentSessionsOutput struct {
	Sessions []*CurrentSession
}

// StartSeasonInput contains parameters for starting a season
type StartSeasonInput struct {
	GameTitle string

	// Name defaults to "Season YYYY-MM-DD"
	Name        string
	Description string

	// PlayerHandles are enrolled up front with status in_progress
	PlayerHandles []string
}

// StartSeasonOutput contains the new season
type StartSeasonOutput struct {
	Season       *models.Season
	Participants []*models.SeasonParticipant

	// LinkedSessionIDs are current sessions of the game attached to the season
	LinkedSessionIDs []string
}

// ListSeasonsInput contains parameters for listing a game's seasons
type ListSeasonsInput struct {
	GameTitle string
}

// SeasonStandings is a season with its participant totals
type SeasonStandings struct {
	Season       *models.Season
	Participants []*models.SeasonParticipant
}

// ListSeasonsOutput contains a game's seasons, oldest first
type ListSeasonsOutput struct {
	Game    *models.Game
	Seasons []*SeasonStandings
}

// FinishSeasonInput contains parameters for finishing a season
type FinishSeasonInput struct {
	SeasonID string

	// Outcomes maps player ID to that player's final outcome
	Outcomes map[string]Outcome
}

// FinishSeasonOutput contains the finished season
type FinishSeasonOutput struct {
	Season       *models.Season
	Participants []*models.SeasonParticipant
}
