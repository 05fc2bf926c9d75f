package models

import (
	"time"
)

// SessionType classifies a session by how many players are active
type SessionType string

const (
	// SessionTypeSolo indicates at most one player is active
	SessionTypeSolo SessionType = "solo"

	// SessionTypeGroup indicates more than one player is active
	SessionTypeGroup SessionType = "group"
)

// SessionTypeFor returns the session type for a number of active players
func SessionTypeFor(activePlayers int) SessionType {
	if activePlayers > 1 {
		return SessionTypeGroup
	}
	return SessionTypeSolo
}

// SessionSource tells where a session was created from
type SessionSource string

const (
	// SessionSourceManual indicates a session created by hand
	SessionSourceManual SessionSource = "manual"

	// SessionSourceExternalBot indicates a session created from chat-bot events
	SessionSourceExternalBot SessionSource = "external_bot"
)

// Session is one continuous occurrence of a game being played (a "jogatina")
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// GameID is the game being played
	GameID string

	// IsCurrent is true until the last active player leaves
	IsCurrent bool

	// SessionType is solo or group, recomputed on every join and leave
	SessionType SessionType

	// Source is where the session came from
	Source SessionSource

	// FirstEventAt is when the session was opened
	FirstEventAt time.Time

	// LastEventAt is the time of the most recent join or leave
	LastEventAt time.Time

	// ActivePlayers is the number of memberships currently active
	ActivePlayers int

	// TotalDurationMinutes is the elapsed time, set when the session closes
	TotalDurationMinutes int

	// SeasonID links the session to a season, empty when unlinked
	SeasonID string

	// Notes is free-form text
	Notes string
}
