package models

import (
	"time"
)

// SeasonParticipant is a player's running totals within a season
type SeasonParticipant struct {
	// ID is the unique identifier for the participant record
	ID string

	// SeasonID is the season being tracked
	SeasonID string

	// PlayerID is the participating player
	PlayerID string

	// Status is the player's outcome, in_progress until the season finishes
	Status string

	// TotalSessions counts finished sessions the player contributed to
	TotalSessions int

	TotalDurationMinutes int
	SoloDurationMinutes  int
	GroupDurationMinutes int

	// Notes is free-form text
	Notes string

	// StatusUpdatedAt is when the final status was set
	StatusUpdatedAt *time.Time
}
