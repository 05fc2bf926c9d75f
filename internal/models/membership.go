package models

import (
	"time"
)

// Outcome statuses shared by memberships and season participants
const (
	StatusDropped        = "dropped"
	StatusFinished       = "finished"
	StatusWouldPlayAgain = "would_play_again"
	StatusInProgress     = "in_progress"
)

// Membership is a player's participation in one session
type Membership struct {
	// ID is the unique identifier for the membership
	ID string

	// SessionID is the session the player took part in
	SessionID string

	// PlayerID is the participating player
	PlayerID string

	// Status is a free-form outcome tag
	Status string

	// IsActive is true while the player is in the session
	IsActive bool

	// SoloDurationMinutes is time played with nobody else active
	SoloDurationMinutes int

	// GroupDurationMinutes is time played alongside at least one other player
	GroupDurationMinutes int

	// TotalDurationMinutes is all matched play time, rounded on its own
	TotalDurationMinutes int

	// Notes is free-form text
	Notes string

	// CreatedAt is when the player first joined the session
	CreatedAt time.Time
}
